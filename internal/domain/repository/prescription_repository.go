package repository

import (
	"clinic-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, active bool) ([]entity.Prescription, error)
	FindActiveByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Prescription, error)
	// Deactivate flips an active prescription off and reports affected rows.
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
}
