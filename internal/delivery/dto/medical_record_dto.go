package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMedicalRecordRequest struct {
	PatientID    uuid.UUID `json:"patient_id" validate:"required"`
	Diagnosis    string    `json:"diagnosis" validate:"required,max=500"`
	Treatment    string    `json:"treatment" validate:"omitempty,max=1000"`
	Prescription string    `json:"prescription" validate:"omitempty,max=1000"`
	Notes        string    `json:"notes" validate:"omitempty,max=1000"`
	FollowUpDate string    `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
}

type MedicalRecordResponse struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patient_id"`
	Patient      string    `json:"patient,omitempty"`
	DoctorID     uuid.UUID `json:"doctor_id"`
	Doctor       string    `json:"doctor,omitempty"`
	VisitDate    time.Time `json:"visit_date"`
	Diagnosis    string    `json:"diagnosis"`
	Treatment    string    `json:"treatment,omitempty"`
	Prescription string    `json:"prescription,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	FollowUpDate *string   `json:"follow_up_date"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
