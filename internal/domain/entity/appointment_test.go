package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityEmergency))
	assert.True(t, ValidPriority(PriorityUrgent))
	assert.True(t, ValidPriority(PriorityNormal))

	assert.False(t, ValidPriority(""))
	assert.False(t, ValidPriority("critical"))
	assert.False(t, ValidPriority("URGENT"))
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 1, PriorityRank(PriorityEmergency))
	assert.Equal(t, 2, PriorityRank(PriorityUrgent))
	assert.Equal(t, 3, PriorityRank(PriorityNormal))

	// Unknown values sort with normal.
	assert.Equal(t, 3, PriorityRank("unknown"))
	assert.Equal(t, 3, PriorityRank(""))
}

func TestAppointmentStatusHelpers(t *testing.T) {
	a := Appointment{Status: AppointmentStatusScheduled}
	assert.True(t, a.IsScheduled())
	assert.False(t, a.IsCancelled())

	a.Status = AppointmentStatusCancelled
	assert.False(t, a.IsScheduled())
	assert.True(t, a.IsCancelled())

	a.Status = AppointmentStatusCompleted
	assert.False(t, a.IsScheduled())
	assert.False(t, a.IsCancelled())
}

func TestDateToken(t *testing.T) {
	a := Appointment{Date: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2026-03-07", a.DateToken())
}
