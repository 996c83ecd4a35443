package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:        appointment.ID,
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
		Doctor:    appointment.Doctor.User.FullName,
		Date:      appointment.DateToken(),
		Time:      appointment.Time,
		Status:    string(appointment.Status),
		Priority:  string(appointment.Priority),
		Symptoms:  appointment.Symptoms,
		Notes:     appointment.Notes,
		CreatedAt: appointment.CreatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *AppointmentToResponse(&appointments[i]))
	}
	return responses
}

func AppointmentToUpcomingResponse(appointment *entity.Appointment) *dto.UpcomingAppointmentResponse {
	return &dto.UpcomingAppointmentResponse{
		ID:            appointment.ID,
		Doctor:        appointment.Doctor.User.FullName,
		Date:          appointment.DateToken(),
		Time:          appointment.Time,
		Priority:      string(appointment.Priority),
		PriorityValue: appointment.PriorityRank(),
		Symptoms:      appointment.Symptoms,
	}
}
