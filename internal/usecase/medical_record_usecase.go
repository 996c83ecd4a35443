package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type MedicalRecordUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	validate    *validator.CustomValidator
	recordRepo  repository.MedicalRecordRepository
	patientRepo repository.PatientProfileRepository
	auditSvc    service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	recordRepo repository.MedicalRecordRepository,
	patientRepo repository.PatientProfileRepository,
	auditSvc service.AuditService,
) *MedicalRecordUsecase {
	return &MedicalRecordUsecase{
		db:          db,
		log:         log,
		validate:    validate,
		recordRepo:  recordRepo,
		patientRepo: patientRepo,
		auditSvc:    auditSvc,
	}
}

// Create documents a visit. Only the treating doctor writes records; patients
// get a read-only view of their own history.
func (u *MedicalRecordUsecase) Create(ctx context.Context, doctorID uuid.UUID, request *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
	}

	var followUp *time.Time
	if request.FollowUpDate != "" {
		parsed, err := time.Parse("2006-01-02", request.FollowUpDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		followUp = &parsed
	}

	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByUserID(db, request.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", request.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	record := &entity.MedicalRecord{
		ID:           uuid.New(),
		PatientID:    request.PatientID,
		DoctorID:     doctorID,
		VisitDate:    time.Now(),
		Diagnosis:    request.Diagnosis,
		Treatment:    request.Treatment,
		Prescription: request.Prescription,
		Notes:        request.Notes,
		FollowUpDate: followUp,
	}

	if err := u.recordRepo.Create(db, record); err != nil {
		// The patient existed moments ago at the lookup; a foreign key
		// violation here means the account was deleted in between.
		if isForeignKeyError(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	if err := u.auditSvc.LogCreate(ctx, db, &doctorID, entity.AuditActionRecordCreate, "medical_records", record.ID.String(), record); err != nil {
		u.log.Warnf("Failed to write audit log for record %s: %+v", record.ID, err)
	}

	record.Patient = *patient
	return converter.MedicalRecordToResponse(record), nil
}

// ListForPatient returns the caller's own visit history, newest first.
func (u *MedicalRecordUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalRecordListResponse, error) {
	records, err := u.recordRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

// ListForDoctor returns every record the doctor has authored.
func (u *MedicalRecordUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.MedicalRecordListResponse, error) {
	records, err := u.recordRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list doctor records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}
