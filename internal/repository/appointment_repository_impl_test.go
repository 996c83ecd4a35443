package repository

import (
	"testing"
	"time"

	"clinic-portal/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestFindScheduledSlotFree(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentRepository()

	doctorID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WithArgs(doctorID, date, "14:30", string(entity.AppointmentStatusScheduled)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	appointment, err := repo.FindScheduledSlot(db, doctorID, date, "14:30")

	require.NoError(t, err)
	assert.Nil(t, appointment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindScheduledSlotTaken(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentRepository()

	doctorID := uuid.New()
	existingID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "doctor_id", "date", "time", "status"}).
		AddRow(existingID, doctorID, date, "14:30", "scheduled")
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WithArgs(doctorID, date, "14:30", string(entity.AppointmentStatusScheduled)).
		WillReturnRows(rows)

	appointment, err := repo.FindScheduledSlot(db, doctorID, date, "14:30")

	require.NoError(t, err)
	require.NotNil(t, appointment)
	assert.Equal(t, existingID, appointment.ID)
	assert.Equal(t, "14:30", appointment.Time)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindScheduledTimes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentRepository()

	doctorID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"time"}).
		AddRow("09:00").
		AddRow("14:30")
	mock.ExpectQuery(`SELECT "time" FROM "appointments"`).
		WithArgs(doctorID, date, string(entity.AppointmentStatusScheduled)).
		WillReturnRows(rows)

	times, err := repo.FindScheduledTimes(db, doctorID, date)

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "14:30"}, times)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIfScheduled(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentRepository()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.UpdateStatusIfScheduled(db, id, entity.AppointmentStatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIfScheduledAlreadyClosed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentRepository()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.UpdateStatusIfScheduled(db, id, entity.AppointmentStatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
