package repository

import (
	"time"

	"clinic-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VitalsRepository interface {
	Create(db *gorm.DB, reading *entity.VitalsReading) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.VitalsReading, error)
	FindLatestByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.VitalsReading, error)
	// FindByPatientSince returns readings recorded on or after the cutoff,
	// oldest first, for trend charting.
	FindByPatientSince(db *gorm.DB, patientID uuid.UUID, since time.Time) ([]entity.VitalsReading, error)
}
