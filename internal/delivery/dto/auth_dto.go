package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RegisterPatientRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
	FullName         string `json:"full_name" validate:"required,min=2,max=100"`
	NationalID       string `json:"national_id" validate:"required,min=5,max=20"`
	DateOfBirth      string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender           string `json:"gender" validate:"required,oneof=male female"`
	Contact          string `json:"contact" validate:"required,min=7,max=20"`
	Address          string `json:"address" validate:"omitempty,max=255"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,max=5"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=20"`
}

type RegisterDoctorRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=6"`
	FullName        string  `json:"full_name" validate:"required,min=2,max=100"`
	LicenseNumber   string  `json:"license_number" validate:"required,min=5,max=50"`
	Specialization  string  `json:"specialization" validate:"required,max=100"`
	Qualification   string  `json:"qualification" validate:"omitempty,max=200"`
	ExperienceYears int     `json:"experience_years" validate:"gte=0,lte=70"`
	CurrentHospital string  `json:"current_hospital" validate:"omitempty,max=200"`
	Availability    string  `json:"availability" validate:"omitempty,max=200"`
	ConsultationFee float64 `json:"consultation_fee" validate:"gte=0"`
}

type UserResponse struct {
	ID             uuid.UUID        `json:"id"`
	Email          string           `json:"email"`
	FullName       string           `json:"full_name"`
	Role           string           `json:"role"`
	PatientProfile *PatientResponse `json:"patient_profile,omitempty"`
	DoctorProfile  *DoctorResponse  `json:"doctor_profile,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}
