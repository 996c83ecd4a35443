package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prescription represents medication issued by a doctor to a patient.
type Prescription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	IssuedAt     time.Time `gorm:"not null;autoCreateTime" json:"issued_at"`
	Medication   string    `gorm:"type:varchar(200);not null" json:"medication"`
	Dosage       string    `gorm:"type:varchar(100);not null" json:"dosage"`
	Frequency    string    `gorm:"type:varchar(100);not null" json:"frequency"`
	Duration     string    `gorm:"type:varchar(100);not null" json:"duration"`
	Instructions string    `gorm:"type:text" json:"instructions,omitempty"`
	Refills      int       `gorm:"not null;default:0" json:"refills"`
	Active       *bool     `gorm:"not null;default:true;index" json:"active"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// IsActive checks whether the prescription is still being dispensed
func (p *Prescription) IsActive() bool {
	return p.Active != nil && *p.Active
}
