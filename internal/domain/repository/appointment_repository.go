package repository

import (
	"time"

	"clinic-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindScheduledByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	// FindScheduledSlot is the exact (doctor, date, time) availability lookup.
	// Returns (nil, nil) when the slot is free.
	FindScheduledSlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeToken string) (*entity.Appointment, error)
	// FindScheduledTimes returns the booked time tokens of a doctor's day.
	FindScheduledTimes(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error)
	FindUpcomingByPatientID(db *gorm.DB, patientID uuid.UUID, from time.Time, limit int) ([]entity.Appointment, error)
	// UpdateStatusIfScheduled transitions a scheduled appointment and reports
	// affected rows: 0 means the appointment was not in scheduled state.
	UpdateStatusIfScheduled(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error)
	FindAllScheduledFrom(db *gorm.DB, from time.Time, limit, offset int) ([]entity.Appointment, error)
}
