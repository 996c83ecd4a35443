package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:               profile.UserID,
		Email:            profile.User.Email,
		FullName:         profile.User.FullName,
		NationalID:       profile.NationalID,
		DateOfBirth:      profile.DateOfBirth.Format("2006-01-02"),
		Gender:           profile.Gender,
		Contact:          profile.Contact,
		Address:          profile.Address,
		BloodGroup:       profile.BloodGroup,
		EmergencyContact: profile.EmergencyContact,
		ProfilePicture:   profile.ProfilePicture,
	}
}
