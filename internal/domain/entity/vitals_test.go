package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestAlertsHeartRateBands(t *testing.T) {
	tests := []struct {
		name      string
		heartRate int
		level     string
	}{
		{"below low bound", 59, AlertLow},
		{"at low bound is normal", 60, ""},
		{"at high bound is normal", 100, ""},
		{"above high bound", 101, AlertHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading := VitalsReading{HeartRate: intPtr(tt.heartRate)}
			alerts := reading.Alerts()

			if tt.level == "" {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, MetricHeartRate, alerts[0].Metric)
			assert.Equal(t, tt.level, alerts[0].Level)
		})
	}
}

func TestAlertsBloodPressureNeedsBothSides(t *testing.T) {
	onlySystolic := VitalsReading{Systolic: intPtr(200)}
	assert.Empty(t, onlySystolic.Alerts())

	onlyDiastolic := VitalsReading{Diastolic: intPtr(20)}
	assert.Empty(t, onlyDiastolic.Alerts())
}

func TestAlertsBloodPressureHighWinsOverLow(t *testing.T) {
	// Systolic qualifies as high while diastolic qualifies as low; the high
	// branch is checked first and produces the only finding.
	reading := VitalsReading{Systolic: intPtr(150), Diastolic: intPtr(50)}
	alerts := reading.Alerts()

	require.Len(t, alerts, 1)
	assert.Equal(t, MetricBloodPressure, alerts[0].Metric)
	assert.Equal(t, AlertHigh, alerts[0].Level)
	assert.Equal(t, "150/50", alerts[0].Value)
}

func TestAlertsBloodPressureLow(t *testing.T) {
	reading := VitalsReading{Systolic: intPtr(85), Diastolic: intPtr(70)}
	alerts := reading.Alerts()

	require.Len(t, alerts, 1)
	assert.Equal(t, AlertLow, alerts[0].Level)
	assert.Equal(t, "85/70", alerts[0].Value)
}

func TestAlertsTemperatureBands(t *testing.T) {
	fever := VitalsReading{Temperature: floatPtr(100.5)}
	alerts := fever.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertFever, alerts[0].Level)

	boundary := VitalsReading{Temperature: floatPtr(100.4)}
	assert.Empty(t, boundary.Alerts())

	low := VitalsReading{Temperature: floatPtr(96.9)}
	alerts = low.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertLow, alerts[0].Level)

	normal := VitalsReading{Temperature: floatPtr(97.0)}
	assert.Empty(t, normal.Alerts())
}

func TestAlertsOxygenSaturation(t *testing.T) {
	low := VitalsReading{OxygenSaturation: intPtr(94)}
	alerts := low.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, MetricOxygenSaturation, alerts[0].Metric)
	assert.Equal(t, AlertLow, alerts[0].Level)
	assert.Equal(t, "94", alerts[0].Value)

	normal := VitalsReading{OxygenSaturation: intPtr(95)}
	assert.Empty(t, normal.Alerts())
}

func TestAlertsEmptyReading(t *testing.T) {
	var reading VitalsReading
	assert.Empty(t, reading.Alerts())
}

func TestAlertsMultipleMetricsKeepOrder(t *testing.T) {
	reading := VitalsReading{
		HeartRate:        intPtr(120),
		Systolic:         intPtr(150),
		Diastolic:        intPtr(95),
		Temperature:      floatPtr(101.2),
		OxygenSaturation: intPtr(90),
	}
	alerts := reading.Alerts()

	require.Len(t, alerts, 4)
	assert.Equal(t, MetricHeartRate, alerts[0].Metric)
	assert.Equal(t, MetricBloodPressure, alerts[1].Metric)
	assert.Equal(t, MetricTemperature, alerts[2].Metric)
	assert.Equal(t, MetricOxygenSaturation, alerts[3].Metric)
}

func TestAlertsIdempotent(t *testing.T) {
	reading := VitalsReading{HeartRate: intPtr(45), Temperature: floatPtr(102)}
	first := reading.Alerts()
	second := reading.Alerts()
	assert.Equal(t, first, second)
}

func TestComputeBMI(t *testing.T) {
	bmi := ComputeBMI(floatPtr(70), floatPtr(175))
	require.NotNil(t, bmi)
	assert.InDelta(t, 22.86, *bmi, 0.001)

	bmi = ComputeBMI(floatPtr(80), floatPtr(180))
	require.NotNil(t, bmi)
	assert.InDelta(t, 24.69, *bmi, 0.001)
}

func TestComputeBMIMissingOrInvalidInputs(t *testing.T) {
	assert.Nil(t, ComputeBMI(nil, floatPtr(175)))
	assert.Nil(t, ComputeBMI(floatPtr(70), nil))
	assert.Nil(t, ComputeBMI(nil, nil))
	assert.Nil(t, ComputeBMI(floatPtr(0), floatPtr(175)))
	assert.Nil(t, ComputeBMI(floatPtr(70), floatPtr(0)))
	assert.Nil(t, ComputeBMI(floatPtr(-70), floatPtr(175)))
}
