package usecase

import (
	"context"
	"fmt"

	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportUsecase produces downloadable PDF documents for patients. Every
// lookup is scoped to the caller, so one patient can never pull another
// patient's paperwork.
type ReportUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	reportSvc        *service.ReportService
	patientRepo      repository.PatientProfileRepository
	recordRepo       repository.MedicalRecordRepository
	prescriptionRepo repository.PrescriptionRepository
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reportSvc *service.ReportService,
	patientRepo repository.PatientProfileRepository,
	recordRepo repository.MedicalRecordRepository,
	prescriptionRepo repository.PrescriptionRepository,
) *ReportUsecase {
	return &ReportUsecase{
		db:               db,
		log:              log,
		reportSvc:        reportSvc,
		patientRepo:      patientRepo,
		recordRepo:       recordRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

// MedicalSummary renders the patient's summary PDF covering their five most
// recent visits. Returns the document bytes and a suggested filename.
func (u *ReportUsecase) MedicalSummary(ctx context.Context, patientID uuid.UUID) ([]byte, string, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.patientRepo.FindByUserID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", patientID, err)
		return nil, "", err
	}
	if profile == nil {
		return nil, "", ErrPatientNotFound
	}

	records, err := u.recordRepo.FindRecentByPatientID(db, patientID, 5)
	if err != nil {
		u.log.Warnf("Failed to load records for summary: %+v", err)
		return nil, "", err
	}

	content, err := u.reportSvc.MedicalSummary(profile, records)
	if err != nil {
		u.log.Warnf("Failed to render medical summary: %+v", err)
		return nil, "", err
	}

	filename := fmt.Sprintf("medical_summary_%s.pdf", profile.NationalID)
	return content, filename, nil
}

// PrescriptionDocument renders a single prescription as a PDF. A
// prescription that exists but belongs to someone else reads as not found.
func (u *ReportUsecase) PrescriptionDocument(ctx context.Context, patientID, prescriptionID uuid.UUID) ([]byte, string, error) {
	db := u.db.WithContext(ctx)

	prescription, err := u.prescriptionRepo.FindByID(db, prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", prescriptionID, err)
		return nil, "", err
	}
	if prescription == nil || prescription.PatientID != patientID {
		return nil, "", ErrPrescriptionNotFound
	}

	content, err := u.reportSvc.PrescriptionDocument(prescription)
	if err != nil {
		u.log.Warnf("Failed to render prescription document: %+v", err)
		return nil, "", err
	}

	filename := fmt.Sprintf("prescription_%s.pdf", prescription.ID)
	return content, filename, nil
}
