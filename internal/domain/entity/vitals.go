package entity

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// VitalsReading is a single immutable snapshot of a patient's measurements.
// Metric fields are pointers: nil means the measurement was not taken.
type VitalsReading struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID        uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	RecordedAt       time.Time `gorm:"not null;index;autoCreateTime" json:"recorded_at"`
	HeartRate        *int      `gorm:"" json:"heart_rate,omitempty"`
	Systolic         *int      `gorm:"column:bp_systolic" json:"bp_systolic,omitempty"`
	Diastolic        *int      `gorm:"column:bp_diastolic" json:"bp_diastolic,omitempty"`
	Temperature      *float64  `gorm:"" json:"temperature,omitempty"`
	OxygenSaturation *int      `gorm:"" json:"oxygen_saturation,omitempty"`
	Weight           *float64  `gorm:"" json:"weight,omitempty"`
	Height           *float64  `gorm:"" json:"height,omitempty"`
	BMI              *float64  `gorm:"column:bmi" json:"bmi,omitempty"`
	Notes            string    `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (VitalsReading) TableName() string {
	return "vitals_readings"
}

// Alert metric names, in evaluation order
const (
	MetricHeartRate        = "Heart Rate"
	MetricBloodPressure    = "Blood Pressure"
	MetricTemperature      = "Temperature"
	MetricOxygenSaturation = "Oxygen Saturation"
)

// Alert level labels
const (
	AlertLow   = "Low"
	AlertHigh  = "High"
	AlertFever = "Fever"
)

// AlertFinding is one metric-level alert produced by evaluating a reading.
// Findings are ephemeral and never persisted.
type AlertFinding struct {
	Metric string `json:"metric"`
	Level  string `json:"level"`
	Value  string `json:"value"`
}

// Alerts classifies each present measurement against fixed clinical
// reference ranges. Absent metrics are skipped, blood pressure is only
// evaluated when both systolic and diastolic are present, and the high
// check wins when both bands could apply. At most one finding per metric,
// in declaration order.
func (v *VitalsReading) Alerts() []AlertFinding {
	var alerts []AlertFinding

	if v.HeartRate != nil {
		if *v.HeartRate < 60 {
			alerts = append(alerts, AlertFinding{MetricHeartRate, AlertLow, strconv.Itoa(*v.HeartRate)})
		} else if *v.HeartRate > 100 {
			alerts = append(alerts, AlertFinding{MetricHeartRate, AlertHigh, strconv.Itoa(*v.HeartRate)})
		}
	}

	if v.Systolic != nil && v.Diastolic != nil {
		value := fmt.Sprintf("%d/%d", *v.Systolic, *v.Diastolic)
		if *v.Systolic > 140 || *v.Diastolic > 90 {
			alerts = append(alerts, AlertFinding{MetricBloodPressure, AlertHigh, value})
		} else if *v.Systolic < 90 || *v.Diastolic < 60 {
			alerts = append(alerts, AlertFinding{MetricBloodPressure, AlertLow, value})
		}
	}

	if v.Temperature != nil {
		value := strconv.FormatFloat(*v.Temperature, 'f', -1, 64)
		if *v.Temperature > 100.4 {
			alerts = append(alerts, AlertFinding{MetricTemperature, AlertFever, value})
		} else if *v.Temperature < 97 {
			alerts = append(alerts, AlertFinding{MetricTemperature, AlertLow, value})
		}
	}

	if v.OxygenSaturation != nil && *v.OxygenSaturation < 95 {
		alerts = append(alerts, AlertFinding{MetricOxygenSaturation, AlertLow, strconv.Itoa(*v.OxygenSaturation)})
	}

	return alerts
}

// ComputeBMI derives body-mass index from weight (kg) and height (cm),
// rounded to 2 decimal places. Returns nil unless both are positive.
func ComputeBMI(weightKg, heightCm *float64) *float64 {
	if weightKg == nil || heightCm == nil || *weightKg <= 0 || *heightCm <= 0 {
		return nil
	}
	heightM := *heightCm / 100
	bmi := math.Round(*weightKg/(heightM*heightM)*100) / 100
	return &bmi
}
