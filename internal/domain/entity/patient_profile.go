package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	NationalID       string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"national_id"`
	DateOfBirth      time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender           string    `gorm:"type:varchar(10);not null" json:"gender"`
	Contact          string    `gorm:"type:varchar(20);index" json:"contact,omitempty"`
	Address          string    `gorm:"type:text" json:"address,omitempty"`
	BloodGroup       string    `gorm:"type:varchar(5)" json:"blood_group,omitempty"`
	EmergencyContact string    `gorm:"type:varchar(20)" json:"emergency_contact,omitempty"`
	ProfilePicture   string    `gorm:"type:varchar(200)" json:"profile_picture,omitempty"`

	// Relationships
	User          User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments  []Appointment   `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	Vitals        []VitalsReading `gorm:"foreignKey:PatientID" json:"vitals,omitempty"`
	Prescriptions []Prescription  `gorm:"foreignKey:PatientID" json:"prescriptions,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
)
