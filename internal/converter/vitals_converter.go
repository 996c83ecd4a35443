package converter

import (
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
)

func VitalsToResponse(reading *entity.VitalsReading) *dto.VitalsResponse {
	findings := reading.Alerts()
	alerts := make([]dto.AlertFindingResponse, 0, len(findings))
	for _, f := range findings {
		alerts = append(alerts, dto.AlertFindingResponse{
			Metric: f.Metric,
			Level:  f.Level,
			Value:  f.Value,
		})
	}

	return &dto.VitalsResponse{
		ID:               reading.ID,
		RecordedAt:       reading.RecordedAt,
		HeartRate:        reading.HeartRate,
		BPSystolic:       reading.Systolic,
		BPDiastolic:      reading.Diastolic,
		Temperature:      reading.Temperature,
		OxygenSaturation: reading.OxygenSaturation,
		Weight:           reading.Weight,
		Height:           reading.Height,
		BMI:              reading.BMI,
		Notes:            reading.Notes,
		Alerts:           alerts,
	}
}

func VitalsToResponses(readings []entity.VitalsReading) []dto.VitalsResponse {
	responses := make([]dto.VitalsResponse, 0, len(readings))
	for i := range readings {
		responses = append(responses, *VitalsToResponse(&readings[i]))
	}
	return responses
}

// VitalsToTrendResponse flattens readings into parallel arrays. Readings
// must already be in chronological order; every array keeps one slot per
// reading so the series stay aligned even when a metric is missing.
func VitalsToTrendResponse(readings []entity.VitalsReading) *dto.VitalsTrendResponse {
	trend := &dto.VitalsTrendResponse{
		Dates:            make([]string, 0, len(readings)),
		HeartRate:        make([]*int, 0, len(readings)),
		BPSystolic:       make([]*int, 0, len(readings)),
		BPDiastolic:      make([]*int, 0, len(readings)),
		Temperature:      make([]*float64, 0, len(readings)),
		OxygenSaturation: make([]*int, 0, len(readings)),
		Weight:           make([]*float64, 0, len(readings)),
		BMI:              make([]*float64, 0, len(readings)),
	}

	for i := range readings {
		r := &readings[i]
		trend.Dates = append(trend.Dates, r.RecordedAt.Format("2006-01-02"))
		trend.HeartRate = append(trend.HeartRate, r.HeartRate)
		trend.BPSystolic = append(trend.BPSystolic, r.Systolic)
		trend.BPDiastolic = append(trend.BPDiastolic, r.Diastolic)
		trend.Temperature = append(trend.Temperature, r.Temperature)
		trend.OxygenSaturation = append(trend.OxygenSaturation, r.OxygenSaturation)
		trend.Weight = append(trend.Weight, r.Weight)
		trend.BMI = append(trend.BMI, r.BMI)
	}

	return trend
}
