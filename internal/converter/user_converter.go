package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

func UserToResponse(user *entity.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
	}

	if user.PatientProfile != nil {
		profile := *user.PatientProfile
		profile.User = *user
		resp.PatientProfile = PatientProfileToResponse(&profile)
	}

	if user.DoctorProfile != nil {
		profile := *user.DoctorProfile
		profile.User = *user
		resp.DoctorProfile = DoctorProfileToResponse(&profile)
	}

	return resp
}
