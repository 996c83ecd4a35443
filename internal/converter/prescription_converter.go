package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	return &dto.PrescriptionResponse{
		ID:           prescription.ID,
		PatientID:    prescription.PatientID,
		Patient:      prescription.Patient.User.FullName,
		DoctorID:     prescription.DoctorID,
		Doctor:       prescription.Doctor.User.FullName,
		IssuedAt:     prescription.IssuedAt,
		Medication:   prescription.Medication,
		Dosage:       prescription.Dosage,
		Frequency:    prescription.Frequency,
		Duration:     prescription.Duration,
		Instructions: prescription.Instructions,
		Refills:      prescription.Refills,
		Active:       prescription.IsActive(),
	}
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, 0, len(prescriptions))
	for i := range prescriptions {
		responses = append(responses, *PrescriptionToResponse(&prescriptions[i]))
	}
	return responses
}
