package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSlotService(t *testing.T) (*SlotReservationService, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewSlotReservationService(nil, client, log), mr
}

func TestSlotKey(t *testing.T) {
	doctorID := uuid.MustParse("a3bb189e-8bf9-3888-9912-ace4e6543002")
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	key := SlotKey(doctorID, date, "14:30")
	assert.Equal(t, "slot:a3bb189e-8bf9-3888-9912-ace4e6543002:2026-09-01:14:30", key)
}

func TestClaimSlot(t *testing.T) {
	svc, mr := setupSlotService(t)
	ctx := context.Background()

	doctorID := uuid.New()
	date := time.Now().AddDate(0, 0, 7)
	appointmentID := uuid.New()

	err := svc.ClaimSlot(ctx, doctorID, date, "10:00", appointmentID)
	require.NoError(t, err)

	got, err := mr.Get(SlotKey(doctorID, date, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, appointmentID.String(), got)
}

func TestClaimSlotAlreadyHeld(t *testing.T) {
	svc, _ := setupSlotService(t)
	ctx := context.Background()

	doctorID := uuid.New()
	date := time.Now().AddDate(0, 0, 7)

	require.NoError(t, svc.ClaimSlot(ctx, doctorID, date, "10:00", uuid.New()))

	err := svc.ClaimSlot(ctx, doctorID, date, "10:00", uuid.New())
	assert.ErrorIs(t, err, ErrSlotClaimed)
}

func TestClaimSlotOneWinnerUnderContention(t *testing.T) {
	svc, _ := setupSlotService(t)
	ctx := context.Background()

	doctorID := uuid.New()
	date := time.Now().AddDate(0, 0, 7)

	const contenders = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.ClaimSlot(ctx, doctorID, date, "14:30", uuid.New()); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestReleaseSlotMakesSlotClaimable(t *testing.T) {
	svc, _ := setupSlotService(t)
	ctx := context.Background()

	doctorID := uuid.New()
	date := time.Now().AddDate(0, 0, 7)

	require.NoError(t, svc.ClaimSlot(ctx, doctorID, date, "10:00", uuid.New()))
	require.NoError(t, svc.ReleaseSlot(ctx, doctorID, date, "10:00"))

	err := svc.ClaimSlot(ctx, doctorID, date, "10:00", uuid.New())
	assert.NoError(t, err)
}

func TestClaimSlotDifferentTokensDoNotCollide(t *testing.T) {
	svc, _ := setupSlotService(t)
	ctx := context.Background()

	doctorID := uuid.New()
	date := time.Now().AddDate(0, 0, 7)

	// "2:30 PM" and "14:30" are distinct tokens; equality is exact, not
	// semantic.
	require.NoError(t, svc.ClaimSlot(ctx, doctorID, date, "14:30", uuid.New()))
	assert.NoError(t, svc.ClaimSlot(ctx, doctorID, date, "2:30 PM", uuid.New()))
}

func TestClaimSlotSetsExpiry(t *testing.T) {
	svc, mr := setupSlotService(t)
	ctx := context.Background()

	doctorID := uuid.New()
	date := time.Now().AddDate(0, 0, 2)

	require.NoError(t, svc.ClaimSlot(ctx, doctorID, date, "10:00", uuid.New()))

	ttl := mr.TTL(SlotKey(doctorID, date, "10:00"))
	assert.Greater(t, ttl, time.Duration(0))
}
