package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
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

var (
	ErrInvalidVitalsValue = errors.New("vitals value is not numeric")
	ErrNoVitalsSubmitted  = errors.New("at least one measurement is required")
)

const defaultTrendDays = 30

type VitalsUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	validate   *validator.CustomValidator
	vitalsRepo repository.VitalsRepository
	auditSvc   service.AuditService
}

func NewVitalsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	vitalsRepo repository.VitalsRepository,
	auditSvc service.AuditService,
) *VitalsUsecase {
	return &VitalsUsecase{
		db:         db,
		log:        log,
		validate:   validate,
		vitalsRepo: vitalsRepo,
		auditSvc:   auditSvc,
	}
}

// Record parses the submitted measurements, derives BMI when both weight and
// height are present, persists the reading and returns it together with any
// threshold alerts. Empty fields are stored as nulls, not zeros; a field that
// is present but not numeric fails the whole request.
func (u *VitalsUsecase) Record(ctx context.Context, patientID uuid.UUID, request *dto.RecordVitalsRequest) (*dto.VitalsResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
	}

	reading := &entity.VitalsReading{
		ID:        uuid.New(),
		PatientID: patientID,
		Notes:     request.Notes,
	}

	var err error
	if reading.HeartRate, err = parseOptionalInt("heart_rate", request.HeartRate); err != nil {
		return nil, err
	}
	if reading.Systolic, err = parseOptionalInt("bp_systolic", request.BPSystolic); err != nil {
		return nil, err
	}
	if reading.Diastolic, err = parseOptionalInt("bp_diastolic", request.BPDiastolic); err != nil {
		return nil, err
	}
	if reading.Temperature, err = parseOptionalFloat("temperature", request.Temperature); err != nil {
		return nil, err
	}
	if reading.OxygenSaturation, err = parseOptionalInt("oxygen_saturation", request.OxygenSaturation); err != nil {
		return nil, err
	}
	if reading.Weight, err = parseOptionalFloat("weight", request.Weight); err != nil {
		return nil, err
	}
	if reading.Height, err = parseOptionalFloat("height", request.Height); err != nil {
		return nil, err
	}

	if reading.HeartRate == nil && reading.Systolic == nil && reading.Diastolic == nil &&
		reading.Temperature == nil && reading.OxygenSaturation == nil &&
		reading.Weight == nil && reading.Height == nil {
		return nil, ErrNoVitalsSubmitted
	}

	reading.BMI = entity.ComputeBMI(reading.Weight, reading.Height)

	db := u.db.WithContext(ctx)
	if err := u.vitalsRepo.Create(db, reading); err != nil {
		u.log.Warnf("Failed to record vitals: %+v", err)
		return nil, err
	}

	if err := u.auditSvc.LogCreate(ctx, db, &patientID, entity.AuditActionVitalsRecord, "vitals_readings", reading.ID.String(), reading); err != nil {
		u.log.Warnf("Failed to write audit log for vitals %s: %+v", reading.ID, err)
	}

	return converter.VitalsToResponse(reading), nil
}

// History returns all of the patient's readings, newest first, each with its
// recomputed alerts.
func (u *VitalsUsecase) History(ctx context.Context, patientID uuid.UUID) (*dto.VitalsListResponse, error) {
	readings, err := u.vitalsRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list vitals: %+v", err)
		return nil, err
	}

	return &dto.VitalsListResponse{
		Readings: converter.VitalsToResponses(readings),
		Total:    len(readings),
	}, nil
}

// Trend returns chart-ready parallel series for the last N days, 30 when
// days is not positive.
func (u *VitalsUsecase) Trend(ctx context.Context, patientID uuid.UUID, days int) (*dto.VitalsTrendResponse, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	since := time.Now().AddDate(0, 0, -days)

	readings, err := u.vitalsRepo.FindByPatientSince(u.db.WithContext(ctx), patientID, since)
	if err != nil {
		u.log.Warnf("Failed to load vitals trend: %+v", err)
		return nil, err
	}

	return converter.VitalsToTrendResponse(readings), nil
}

func parseOptionalInt(field, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVitalsValue, field)
	}
	return &n, nil
}

func parseOptionalFloat(field, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVitalsValue, field)
	}
	return &f, nil
}
