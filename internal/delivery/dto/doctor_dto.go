package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpdateDoctorRequest struct {
	FullName        string   `json:"full_name" validate:"omitempty,min=2,max=100"`
	Specialization  string   `json:"specialization" validate:"omitempty,max=100"`
	Qualification   string   `json:"qualification" validate:"omitempty,max=200"`
	ExperienceYears *int     `json:"experience_years" validate:"omitempty,gte=0,lte=70"`
	CurrentHospital string   `json:"current_hospital" validate:"omitempty,max=200"`
	Availability    string   `json:"availability" validate:"omitempty,max=200"`
	ConsultationFee *float64 `json:"consultation_fee" validate:"omitempty,gte=0"`
}

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	Email           string          `json:"email"`
	FullName        string          `json:"full_name"`
	LicenseNumber   string          `json:"license_number"`
	Specialization  string          `json:"specialization"`
	Qualification   string          `json:"qualification,omitempty"`
	ExperienceYears int             `json:"experience_years"`
	CurrentHospital string          `json:"current_hospital,omitempty"`
	Availability    string          `json:"availability,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	IsActive        bool            `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
