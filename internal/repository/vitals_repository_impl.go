package repository

import (
	"errors"
	"time"

	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type vitalsRepository struct{}

func NewVitalsRepository() domainRepo.VitalsRepository {
	return &vitalsRepository{}
}

func (r *vitalsRepository) Create(db *gorm.DB, reading *entity.VitalsReading) error {
	return db.Create(reading).Error
}

func (r *vitalsRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.VitalsReading, error) {
	var readings []entity.VitalsReading
	err := db.Where("patient_id = ?", patientID).
		Order("recorded_at DESC").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *vitalsRepository) FindLatestByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.VitalsReading, error) {
	var reading entity.VitalsReading
	err := db.Where("patient_id = ?", patientID).
		Order("recorded_at DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

func (r *vitalsRepository) FindByPatientSince(db *gorm.DB, patientID uuid.UUID, since time.Time) ([]entity.VitalsReading, error) {
	var readings []entity.VitalsReading
	err := db.Where("patient_id = ? AND recorded_at >= ?", patientID, since).
		Order("recorded_at").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}
