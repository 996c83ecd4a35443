package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord documents one clinical visit, authored by a doctor.
type MedicalRecord struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	VisitDate    time.Time  `gorm:"not null;index;autoCreateTime" json:"visit_date"`
	Diagnosis    string     `gorm:"type:text;not null" json:"diagnosis"`
	Treatment    string     `gorm:"type:text" json:"treatment,omitempty"`
	Prescription string     `gorm:"type:text" json:"prescription,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	FollowUpDate *time.Time `gorm:"type:date" json:"follow_up_date,omitempty"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
