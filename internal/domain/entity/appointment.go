package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentPriority classifies how urgent a visit is
type AppointmentPriority string

const (
	PriorityEmergency AppointmentPriority = "emergency"
	PriorityUrgent    AppointmentPriority = "urgent"
	PriorityNormal    AppointmentPriority = "normal"
)

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p AppointmentPriority) bool {
	switch p {
	case PriorityEmergency, PriorityUrgent, PriorityNormal:
		return true
	}
	return false
}

// Appointment represents a booked slot between a patient and a doctor.
// The slot time is an opaque token (e.g. "14:30") compared for exact equality;
// there is no duration or working-hours grid. A partial unique index on
// (doctor_id, date, time) WHERE status = 'scheduled' backs the
// at-most-one-scheduled-appointment-per-slot invariant.
type Appointment struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID           `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Date      time.Time           `gorm:"type:date;not null;index" json:"date"`
	Time      string              `gorm:"type:varchar(10);not null" json:"time"`
	Status    AppointmentStatus   `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Priority  AppointmentPriority `gorm:"type:varchar(20);not null;default:'normal'" json:"priority"`
	Symptoms  string              `gorm:"type:text" json:"symptoms,omitempty"`
	Notes     string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment is still active
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// PriorityRank maps a priority to its sort weight: emergency sorts first,
// unknown values rank with normal.
func (a *Appointment) PriorityRank() int {
	return PriorityRank(a.Priority)
}

// PriorityRank returns the ordering weight for a priority value.
func PriorityRank(p AppointmentPriority) int {
	switch p {
	case PriorityEmergency:
		return 1
	case PriorityUrgent:
		return 2
	default:
		return 3
	}
}

// DateToken renders the calendar date the way slot keys and API payloads carry it.
func (a *Appointment) DateToken() string {
	return a.Date.Format("2006-01-02")
}
