package dto

import "github.com/google/uuid"

type PatientResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	NationalID       string    `json:"national_id"`
	DateOfBirth      string    `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	Contact          string    `json:"contact"`
	Address          string    `json:"address,omitempty"`
	BloodGroup       string    `json:"blood_group,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	ProfilePicture   string    `json:"profile_picture,omitempty"`
}

type UpdatePatientProfileRequest struct {
	FullName         string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Contact          string `json:"contact" validate:"omitempty,min=7,max=20"`
	Address          string `json:"address" validate:"omitempty,max=255"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,max=5"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=20"`
	ProfilePicture   string `json:"profile_picture" validate:"omitempty,max=200"`
	NewPassword      string `json:"new_password" validate:"omitempty,min=6"`
}
