package usecase

import (
	"context"
	"time"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dashboardItemLimit = 5

// DashboardUsecase assembles the patient home view: profile, next
// appointments, recent visits, latest vitals with alerts and active
// prescriptions.
type DashboardUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	patientRepo      repository.PatientProfileRepository
	appointmentRepo  repository.AppointmentRepository
	recordRepo       repository.MedicalRecordRepository
	vitalsRepo       repository.VitalsRepository
	prescriptionRepo repository.PrescriptionRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
	vitalsRepo repository.VitalsRepository,
	prescriptionRepo repository.PrescriptionRepository,
) *DashboardUsecase {
	return &DashboardUsecase{
		db:               db,
		log:              log,
		patientRepo:      patientRepo,
		appointmentRepo:  appointmentRepo,
		recordRepo:       recordRepo,
		vitalsRepo:       vitalsRepo,
		prescriptionRepo: prescriptionRepo,
	}
}

func (u *DashboardUsecase) Get(ctx context.Context, patientID uuid.UUID) (*dto.DashboardResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.patientRepo.FindByUserID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", patientID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	today := time.Now().Truncate(24 * time.Hour)
	appointments, err := u.appointmentRepo.FindUpcomingByPatientID(db, patientID, today, dashboardItemLimit)
	if err != nil {
		u.log.Warnf("Failed to load upcoming appointments: %+v", err)
		return nil, err
	}
	SortAppointments(appointments)

	records, err := u.recordRepo.FindRecentByPatientID(db, patientID, dashboardItemLimit)
	if err != nil {
		u.log.Warnf("Failed to load recent records: %+v", err)
		return nil, err
	}

	latest, err := u.vitalsRepo.FindLatestByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to load latest vitals: %+v", err)
		return nil, err
	}

	prescriptions, err := u.prescriptionRepo.FindActiveByPatientID(db, patientID, dashboardItemLimit)
	if err != nil {
		u.log.Warnf("Failed to load active prescriptions: %+v", err)
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Patient:              *converter.PatientProfileToResponse(profile),
		UpcomingAppointments: converter.AppointmentsToResponses(appointments),
		RecentRecords:        converter.MedicalRecordsToResponses(records),
		VitalAlerts:          []dto.AlertFindingResponse{},
		ActivePrescriptions:  converter.PrescriptionsToResponses(prescriptions),
	}

	if latest != nil {
		vitals := converter.VitalsToResponse(latest)
		resp.LatestVitals = vitals
		resp.VitalAlerts = vitals.Alerts
	}

	return resp, nil
}
