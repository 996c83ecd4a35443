package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required"`
	Time     string    `json:"time" validate:"required,max=10"`
	Symptoms string    `json:"symptoms" validate:"omitempty,max=500"`
	Priority string    `json:"priority" validate:"omitempty,max=20"`
}

type AppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Doctor    string    `json:"doctor"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	Symptoms  string    `json:"symptoms,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Upcoming []AppointmentResponse `json:"upcoming"`
	Past     []AppointmentResponse `json:"past"`
	Total    int                   `json:"total"`
}

// UpcomingAppointmentResponse is the ordered view shown on the patient
// dashboard, sorted by date, then priority, then time.
type UpcomingAppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	Doctor        string    `json:"doctor"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Priority      string    `json:"priority"`
	PriorityValue int       `json:"priority_value"`
	Symptoms      string    `json:"symptoms,omitempty"`
}

type UpcomingAppointmentListResponse struct {
	Appointments []UpcomingAppointmentResponse `json:"appointments"`
	Total        int                           `json:"total"`
}

type DoctorAvailabilityResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Specialization  string          `json:"specialization"`
	Qualification   string          `json:"qualification,omitempty"`
	ExperienceYears int             `json:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	BookedSlots     []string        `json:"booked_slots"`
}

type DoctorAvailabilityListResponse struct {
	Doctors []DoctorAvailabilityResponse `json:"doctors"`
	Total   int                          `json:"total"`
}
