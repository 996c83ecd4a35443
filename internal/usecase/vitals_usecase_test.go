package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/pkg/validator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeVitalsRepo struct {
	readings []entity.VitalsReading
}

func (f *fakeVitalsRepo) Create(_ *gorm.DB, reading *entity.VitalsReading) error {
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now()
	}
	f.readings = append(f.readings, *reading)
	return nil
}

func (f *fakeVitalsRepo) FindByPatientID(_ *gorm.DB, patientID uuid.UUID) ([]entity.VitalsReading, error) {
	var out []entity.VitalsReading
	for i := len(f.readings) - 1; i >= 0; i-- {
		if f.readings[i].PatientID == patientID {
			out = append(out, f.readings[i])
		}
	}
	return out, nil
}

func (f *fakeVitalsRepo) FindLatestByPatientID(_ *gorm.DB, patientID uuid.UUID) (*entity.VitalsReading, error) {
	for i := len(f.readings) - 1; i >= 0; i-- {
		if f.readings[i].PatientID == patientID {
			cp := f.readings[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeVitalsRepo) FindByPatientSince(_ *gorm.DB, patientID uuid.UUID, since time.Time) ([]entity.VitalsReading, error) {
	var out []entity.VitalsReading
	for _, r := range f.readings {
		if r.PatientID == patientID && !r.RecordedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func setupVitalsUsecase(t *testing.T) (*VitalsUsecase, *fakeVitalsRepo) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	repo := &fakeVitalsRepo{}
	u := NewVitalsUsecase(db, log, validator.NewValidator(), repo, &fakeAuditService{})
	return u, repo
}

func TestRecordFullReading(t *testing.T) {
	u, repo := setupVitalsUsecase(t)

	resp, err := u.Record(context.Background(), uuid.New(), &dto.RecordVitalsRequest{
		HeartRate:        "72",
		BPSystolic:       "118",
		BPDiastolic:      "76",
		Temperature:      "98.2",
		OxygenSaturation: "98",
		Weight:           "70",
		Height:           "175",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.HeartRate)
	assert.Equal(t, 72, *resp.HeartRate)
	require.NotNil(t, resp.BMI)
	assert.Equal(t, 22.86, *resp.BMI)
	assert.Empty(t, resp.Alerts)
	assert.Len(t, repo.readings, 1)
}

func TestRecordPartialReadingStoresNulls(t *testing.T) {
	u, repo := setupVitalsUsecase(t)

	resp, err := u.Record(context.Background(), uuid.New(), &dto.RecordVitalsRequest{
		HeartRate: "64",
	})

	require.NoError(t, err)
	assert.NotNil(t, resp.HeartRate)
	assert.Nil(t, resp.BPSystolic)
	assert.Nil(t, resp.Temperature)
	assert.Nil(t, resp.BMI)

	stored := repo.readings[0]
	assert.Nil(t, stored.Weight)
	assert.Nil(t, stored.Height)
}

func TestRecordNonNumericValue(t *testing.T) {
	u, repo := setupVitalsUsecase(t)

	_, err := u.Record(context.Background(), uuid.New(), &dto.RecordVitalsRequest{
		HeartRate:   "72",
		Temperature: "warm",
	})

	assert.ErrorIs(t, err, ErrInvalidVitalsValue)
	assert.Contains(t, err.Error(), "temperature")
	assert.Empty(t, repo.readings, "nothing persisted on a bad value")
}

func TestRecordNothingSubmitted(t *testing.T) {
	u, _ := setupVitalsUsecase(t)

	_, err := u.Record(context.Background(), uuid.New(), &dto.RecordVitalsRequest{
		Notes: "feeling fine",
	})

	assert.ErrorIs(t, err, ErrNoVitalsSubmitted)
}

func TestRecordReturnsAlerts(t *testing.T) {
	u, _ := setupVitalsUsecase(t)

	resp, err := u.Record(context.Background(), uuid.New(), &dto.RecordVitalsRequest{
		HeartRate:        "110",
		BPSystolic:       "150",
		BPDiastolic:      "95",
		OxygenSaturation: "92",
	})

	require.NoError(t, err)
	require.Len(t, resp.Alerts, 3)
	assert.Equal(t, dto.AlertFindingResponse{Metric: entity.MetricHeartRate, Level: entity.AlertHigh, Value: "110"}, resp.Alerts[0])
	assert.Equal(t, dto.AlertFindingResponse{Metric: entity.MetricBloodPressure, Level: entity.AlertHigh, Value: "150/95"}, resp.Alerts[1])
	assert.Equal(t, dto.AlertFindingResponse{Metric: entity.MetricOxygenSaturation, Level: entity.AlertLow, Value: "92"}, resp.Alerts[2])
}

func TestRecordBMIOnlyWhenBothPresent(t *testing.T) {
	u, _ := setupVitalsUsecase(t)

	resp, err := u.Record(context.Background(), uuid.New(), &dto.RecordVitalsRequest{
		Weight: "80",
	})

	require.NoError(t, err)
	assert.Nil(t, resp.BMI)
}

func TestHistoryNewestFirst(t *testing.T) {
	u, _ := setupVitalsUsecase(t)
	patientID := uuid.New()

	for _, hr := range []string{"60", "70", "80"} {
		_, err := u.Record(context.Background(), patientID, &dto.RecordVitalsRequest{HeartRate: hr})
		require.NoError(t, err)
	}

	list, err := u.History(context.Background(), patientID)
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, 80, *list.Readings[0].HeartRate)
	assert.Equal(t, 60, *list.Readings[2].HeartRate)
}

func TestHistoryScopedToPatient(t *testing.T) {
	u, _ := setupVitalsUsecase(t)
	patientID := uuid.New()

	_, err := u.Record(context.Background(), patientID, &dto.RecordVitalsRequest{HeartRate: "70"})
	require.NoError(t, err)
	_, err = u.Record(context.Background(), uuid.New(), &dto.RecordVitalsRequest{HeartRate: "90"})
	require.NoError(t, err)

	list, err := u.History(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestTrendSeries(t *testing.T) {
	u, repo := setupVitalsUsecase(t)
	patientID := uuid.New()

	weight70, height := 70.0, 175.0
	hr := 72
	repo.readings = append(repo.readings, entity.VitalsReading{
		ID:         uuid.New(),
		PatientID:  patientID,
		RecordedAt: time.Now().AddDate(0, 0, -2),
		HeartRate:  &hr,
		Weight:     &weight70,
		Height:     &height,
		BMI:        entity.ComputeBMI(&weight70, &height),
	})
	repo.readings = append(repo.readings, entity.VitalsReading{
		ID:         uuid.New(),
		PatientID:  patientID,
		RecordedAt: time.Now().AddDate(0, 0, -1),
		HeartRate:  &hr,
	})

	trend, err := u.Trend(context.Background(), patientID, 7)
	require.NoError(t, err)

	require.Len(t, trend.Dates, 2)
	require.Len(t, trend.HeartRate, 2)
	require.Len(t, trend.Weight, 2)
	assert.Equal(t, 72, *trend.HeartRate[0])
	assert.NotNil(t, trend.Weight[0])
	assert.Nil(t, trend.Weight[1], "missing metric stays nil in its series slot")
}

func TestTrendExcludesOldReadings(t *testing.T) {
	u, repo := setupVitalsUsecase(t)
	patientID := uuid.New()

	hr := 72
	repo.readings = append(repo.readings, entity.VitalsReading{
		ID:         uuid.New(),
		PatientID:  patientID,
		RecordedAt: time.Now().AddDate(0, 0, -45),
		HeartRate:  &hr,
	})
	repo.readings = append(repo.readings, entity.VitalsReading{
		ID:         uuid.New(),
		PatientID:  patientID,
		RecordedAt: time.Now().AddDate(0, 0, -5),
		HeartRate:  &hr,
	})

	// Zero days falls back to the 30 day default window.
	trend, err := u.Trend(context.Background(), patientID, 0)
	require.NoError(t, err)
	assert.Len(t, trend.Dates, 1)
}
