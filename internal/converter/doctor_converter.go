package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	isActive := profile.User.IsActive != nil && *profile.User.IsActive

	return &dto.DoctorResponse{
		ID:              profile.UserID,
		Email:           profile.User.Email,
		FullName:        profile.User.FullName,
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  profile.Specialization,
		Qualification:   profile.Qualification,
		ExperienceYears: profile.ExperienceYears,
		CurrentHospital: profile.CurrentHospital,
		Availability:    profile.Availability,
		ConsultationFee: profile.ConsultationFee,
		IsActive:        isActive,
	}
}

func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *DoctorProfileToResponse(&profiles[i]))
	}
	return responses
}
