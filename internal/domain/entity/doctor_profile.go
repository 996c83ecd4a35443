package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Qualification   string          `gorm:"type:varchar(100);not null" json:"qualification"`
	ExperienceYears int             `gorm:"not null;default:0" json:"experience_years"`
	CurrentHospital string          `gorm:"type:varchar(100)" json:"current_hospital,omitempty"`
	Availability    string          `gorm:"type:varchar(50)" json:"availability,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"consultation_fee"`

	// Relationships
	User          User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments  []Appointment  `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
	Records       []MedicalRecord `gorm:"foreignKey:DoctorID" json:"records,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:DoctorID" json:"prescriptions,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
