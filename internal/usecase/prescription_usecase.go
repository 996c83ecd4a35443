package usecase

import (
	"context"
	"errors"

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

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPrescriptionInactive = errors.New("prescription is already inactive")
)

type PrescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	validate         *validator.CustomValidator
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientProfileRepository
	auditSvc         service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientProfileRepository,
	auditSvc service.AuditService,
) *PrescriptionUsecase {
	return &PrescriptionUsecase{
		db:               db,
		log:              log,
		validate:         validate,
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		auditSvc:         auditSvc,
	}
}

// Issue creates an active prescription for one of the doctor's patients.
func (u *PrescriptionUsecase) Issue(ctx context.Context, doctorID uuid.UUID, request *dto.IssuePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
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

	prescription := &entity.Prescription{
		ID:           uuid.New(),
		PatientID:    request.PatientID,
		DoctorID:     doctorID,
		Medication:   request.Medication,
		Dosage:       request.Dosage,
		Frequency:    request.Frequency,
		Duration:     request.Duration,
		Instructions: request.Instructions,
		Refills:      request.Refills,
	}

	if err := u.prescriptionRepo.Create(db, prescription); err != nil {
		u.log.Warnf("Failed to issue prescription: %+v", err)
		return nil, err
	}

	if err := u.auditSvc.LogCreate(ctx, db, &doctorID, entity.AuditActionPrescriptionIssue, "prescriptions", prescription.ID.String(), prescription); err != nil {
		u.log.Warnf("Failed to write audit log for prescription %s: %+v", prescription.ID, err)
	}

	prescription.Patient = *patient
	active := true
	prescription.Active = &active
	return converter.PrescriptionToResponse(prescription), nil
}

// ListForPatient splits the caller's prescriptions into active and past.
func (u *PrescriptionUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	db := u.db.WithContext(ctx)

	active, err := u.prescriptionRepo.FindByPatientID(db, patientID, true)
	if err != nil {
		u.log.Warnf("Failed to list active prescriptions: %+v", err)
		return nil, err
	}
	past, err := u.prescriptionRepo.FindByPatientID(db, patientID, false)
	if err != nil {
		u.log.Warnf("Failed to list past prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Active: converter.PrescriptionsToResponses(active),
		Past:   converter.PrescriptionsToResponses(past),
		Total:  len(active) + len(past),
	}, nil
}

// Deactivate stops an active prescription. Only the issuing doctor may stop
// it; the conditional update makes a second deactivation a no-op error
// instead of a lost write.
func (u *PrescriptionUsecase) Deactivate(ctx context.Context, doctorID, prescriptionID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	prescription, err := u.prescriptionRepo.FindByID(db, prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", prescriptionID, err)
		return err
	}
	if prescription == nil || prescription.DoctorID != doctorID {
		return ErrPrescriptionNotFound
	}

	rows, err := u.prescriptionRepo.Deactivate(db, prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to deactivate prescription %s: %+v", prescriptionID, err)
		return err
	}
	if rows == 0 {
		return ErrPrescriptionInactive
	}

	if err := u.auditSvc.LogUpdate(ctx, db, &doctorID, entity.AuditActionPrescriptionStop, "prescriptions", prescriptionID.String(),
		map[string]interface{}{"active": true},
		map[string]interface{}{"active": false}); err != nil {
		u.log.Warnf("Failed to write audit log for deactivation %s: %+v", prescriptionID, err)
	}

	return nil
}
