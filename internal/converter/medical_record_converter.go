package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	var followUp *string
	if record.FollowUpDate != nil {
		v := record.FollowUpDate.Format("2006-01-02")
		followUp = &v
	}

	return &dto.MedicalRecordResponse{
		ID:           record.ID,
		PatientID:    record.PatientID,
		Patient:      record.Patient.User.FullName,
		DoctorID:     record.DoctorID,
		Doctor:       record.Doctor.User.FullName,
		VisitDate:    record.VisitDate,
		Diagnosis:    record.Diagnosis,
		Treatment:    record.Treatment,
		Prescription: record.Prescription,
		Notes:        record.Notes,
		FollowUpDate: followUp,
	}
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *MedicalRecordToResponse(&records[i]))
	}
	return responses
}
