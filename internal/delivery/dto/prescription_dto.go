package dto

import (
	"time"

	"github.com/google/uuid"
)

type IssuePrescriptionRequest struct {
	PatientID    uuid.UUID `json:"patient_id" validate:"required"`
	Medication   string    `json:"medication" validate:"required,max=200"`
	Dosage       string    `json:"dosage" validate:"required,max=100"`
	Frequency    string    `json:"frequency" validate:"required,max=100"`
	Duration     string    `json:"duration" validate:"required,max=100"`
	Instructions string    `json:"instructions" validate:"omitempty,max=500"`
	Refills      int       `json:"refills" validate:"gte=0,lte=12"`
}

type PrescriptionResponse struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patient_id"`
	Patient      string    `json:"patient,omitempty"`
	DoctorID     uuid.UUID `json:"doctor_id"`
	Doctor       string    `json:"doctor,omitempty"`
	IssuedAt     time.Time `json:"issued_at"`
	Medication   string    `json:"medication"`
	Dosage       string    `json:"dosage"`
	Frequency    string    `json:"frequency"`
	Duration     string    `json:"duration"`
	Instructions string    `json:"instructions,omitempty"`
	Refills      int       `json:"refills"`
	Active       bool      `json:"active"`
}

type PrescriptionListResponse struct {
	Active []PrescriptionResponse `json:"active"`
	Past   []PrescriptionResponse `json:"past"`
	Total  int                    `json:"total"`
}
