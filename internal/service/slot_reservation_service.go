package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotClaimed is returned when another booking already holds the slot key.
var ErrSlotClaimed = errors.New("slot is already claimed")

// claimSlotScript atomically claims a slot key unless it is already held.
// Redis Go client automatically uses EVALSHA after the first call, so the
// script body is only shipped once.
//
// Logic:
// 1. EXISTS key → 0 means claim rejected (someone got there first)
// 2. otherwise SET key with the claiming appointment ID and a TTL
var claimSlotScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 1 then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[1], 'EX', tonumber(ARGV[2]))
	return 1
`)

const (
	// Redis key prefix for slot claims: slot:{doctorID}:{date}:{time}
	RedisSlotKeyPrefix = "slot:"

	// Batch size for startup re-sync
	syncBatchSize = 500
)

// SlotReservationService mirrors the scheduled-appointment slot state into
// Redis so concurrent bookings are rejected before they race on the database.
// The partial unique index on appointments remains the final guard; Redis is
// the fast path.
type SlotReservationService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotReservationService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *SlotReservationService {
	return &SlotReservationService{
		db:          db,
		redisClient: redisClient,
		log:         log,
	}
}

// SlotKey builds the Redis key for a (doctor, date, time) slot.
func SlotKey(doctorID uuid.UUID, date time.Time, timeToken string) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisSlotKeyPrefix, doctorID, date.Format("2006-01-02"), timeToken)
}

// ClaimSlot atomically claims the slot for the given appointment. Exactly one
// of any number of concurrent claims on the same key wins; the rest get
// ErrSlotClaimed.
func (s *SlotReservationService) ClaimSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, timeToken string, appointmentID uuid.UUID) error {
	key := SlotKey(doctorID, date, timeToken)
	ttl := s.calculateTTL(date)

	result, err := claimSlotScript.Run(ctx, s.redisClient, []string{key}, appointmentID.String(), int(ttl.Seconds())).Int()
	if err != nil {
		s.log.Warnf("Failed Lua script ClaimSlot for %s: %+v", key, err)
		return fmt.Errorf("lua claim_slot for %s: %w", key, err)
	}

	if result == 0 {
		return ErrSlotClaimed
	}

	s.log.Debugf("Claimed slot %s for appointment %s", key, appointmentID)
	return nil
}

// ReleaseSlot frees a slot claim after a cancellation, or as compensation
// when the database insert behind a claim failed.
func (s *SlotReservationService) ReleaseSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, timeToken string) error {
	key := SlotKey(doctorID, date, timeToken)

	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to release slot %s: %+v", key, err)
		return fmt.Errorf("release slot %s: %w", key, err)
	}

	s.log.Debugf("Released slot %s", key)
	return nil
}

// SyncOnStartup rebuilds slot claims from the appointments table so Redis
// reflects the database after a restart or flush. Processes scheduled
// appointments from today onward in batches, one pipeline per batch.
// Should run before the server accepts traffic.
func (s *SlotReservationService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting slot claim re-sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	offset := 0
	totalSynced := 0

	for {
		var appointments []entity.Appointment
		err := s.db.WithContext(ctx).
			Where("status = ? AND date >= ?", entity.AppointmentStatusScheduled, today).
			Order("id").
			Limit(syncBatchSize).
			Offset(offset).
			Find(&appointments).Error
		if err != nil {
			s.log.Errorf("Failed to query appointments at offset %d: %+v", offset, err)
			return fmt.Errorf("query appointments at offset %d: %w", offset, err)
		}

		if len(appointments) == 0 {
			if offset == 0 {
				s.log.Info("No scheduled appointments found for sync")
			}
			break
		}

		// New pipeline per batch keeps memory flat across large tables.
		pipe := s.redisClient.TxPipeline()
		for _, a := range appointments {
			key := SlotKey(a.DoctorID, a.Date, a.Time)
			pipe.Set(ctx, key, a.ID.String(), s.calculateTTL(a.Date))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(appointments)
		if len(appointments) < syncBatchSize {
			break
		}
		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Slot claim re-sync completed: %d slots synced in %v", totalSynced, time.Since(startTime))
	return nil
}

// calculateTTL keeps a claim alive until 24 hours after the appointment date.
func (s *SlotReservationService) calculateTTL(date time.Time) time.Duration {
	expireAt := date.AddDate(0, 0, 1)
	ttl := time.Until(expireAt)

	if ttl <= 0 {
		// Past date, short TTL for cleanup
		return 1 * time.Minute
	}

	return ttl
}
