package dto

import (
	"time"

	"github.com/google/uuid"
)

// RecordVitalsRequest carries every metric as a string. Clients submit raw
// form input and the usecase parses each field, so a non-numeric value is a
// validation failure rather than a silent zero.
type RecordVitalsRequest struct {
	HeartRate        string `json:"heart_rate" validate:"omitempty,max=10"`
	BPSystolic       string `json:"bp_systolic" validate:"omitempty,max=10"`
	BPDiastolic      string `json:"bp_diastolic" validate:"omitempty,max=10"`
	Temperature      string `json:"temperature" validate:"omitempty,max=10"`
	OxygenSaturation string `json:"oxygen_saturation" validate:"omitempty,max=10"`
	Weight           string `json:"weight" validate:"omitempty,max=10"`
	Height           string `json:"height" validate:"omitempty,max=10"`
	Notes            string `json:"notes" validate:"omitempty,max=500"`
}

type AlertFindingResponse struct {
	Metric string `json:"metric"`
	Level  string `json:"level"`
	Value  string `json:"value"`
}

type VitalsResponse struct {
	ID               uuid.UUID              `json:"id"`
	RecordedAt       time.Time              `json:"recorded_at"`
	HeartRate        *int                   `json:"heart_rate"`
	BPSystolic       *int                   `json:"bp_systolic"`
	BPDiastolic      *int                   `json:"bp_diastolic"`
	Temperature      *float64               `json:"temperature"`
	OxygenSaturation *int                   `json:"oxygen_saturation"`
	Weight           *float64               `json:"weight"`
	Height           *float64               `json:"height"`
	BMI              *float64               `json:"bmi"`
	Notes            string                 `json:"notes,omitempty"`
	Alerts           []AlertFindingResponse `json:"alerts"`
}

type VitalsListResponse struct {
	Readings []VitalsResponse `json:"readings"`
	Total    int              `json:"total"`
}

// VitalsTrendResponse holds parallel arrays, one entry per reading in
// chronological order, ready for charting.
type VitalsTrendResponse struct {
	Dates            []string   `json:"dates"`
	HeartRate        []*int     `json:"heart_rate"`
	BPSystolic       []*int     `json:"bp_systolic"`
	BPDiastolic      []*int     `json:"bp_diastolic"`
	Temperature      []*float64 `json:"temperature"`
	OxygenSaturation []*int     `json:"oxygen_saturation"`
	Weight           []*float64 `json:"weight"`
	BMI              []*float64 `json:"bmi"`
}
