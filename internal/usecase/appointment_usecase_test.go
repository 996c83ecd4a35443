package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/validator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeAppointmentRepo keeps appointments in memory and honors the scheduled
// slot semantics of the real repository.
type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
	createErr    error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func slotOf(a *entity.Appointment) string {
	return fmt.Sprintf("%s|%s|%s", a.DoctorID, a.DateToken(), a.Time)
}

func (f *fakeAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *appointment
	f.appointments[appointment.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) FindByPatientID(_ *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindScheduledByPatientID(_ *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID && a.IsScheduled() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByDoctorAndDate(_ *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Date.Equal(date) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindScheduledSlot(_ *gorm.DB, doctorID uuid.UUID, date time.Time, timeToken string) (*entity.Appointment, error) {
	want := fmt.Sprintf("%s|%s|%s", doctorID, date.Format("2006-01-02"), timeToken)
	for _, a := range f.appointments {
		if a.IsScheduled() && slotOf(a) == want {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindScheduledTimes(_ *gorm.DB, doctorID uuid.UUID, date time.Time) ([]string, error) {
	var out []string
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.IsScheduled() {
			out = append(out, a.Time)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindUpcomingByPatientID(_ *gorm.DB, patientID uuid.UUID, from time.Time, limit int) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID && a.IsScheduled() && !a.Date.Before(from) {
			out = append(out, *a)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatusIfScheduled(_ *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	a, ok := f.appointments[id]
	if !ok || !a.IsScheduled() {
		return 0, nil
	}
	a.Status = status
	return 1, nil
}

func (f *fakeAppointmentRepo) FindAllScheduledFrom(_ *gorm.DB, from time.Time, limit, offset int) ([]entity.Appointment, error) {
	return nil, nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*entity.DoctorProfile
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*entity.DoctorProfile)}
}

func (f *fakeDoctorRepo) addActiveDoctor(name string) uuid.UUID {
	id := uuid.New()
	active := true
	f.doctors[id] = &entity.DoctorProfile{
		UserID:         id,
		Specialization: "General Medicine",
		User:           entity.User{ID: id, FullName: name, IsActive: &active},
	}
	return id
}

func (f *fakeDoctorRepo) Create(_ *gorm.DB, profile *entity.DoctorProfile) error {
	f.doctors[profile.UserID] = profile
	return nil
}

func (f *fakeDoctorRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	d, ok := f.doctors[userID]
	if !ok {
		return nil, nil
	}
	return d, nil
}

func (f *fakeDoctorRepo) FindAll(_ *gorm.DB) ([]entity.DoctorProfile, error) {
	var out []entity.DoctorProfile
	for _, d := range f.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDoctorRepo) FindBySpecialization(_ *gorm.DB, specialization string) ([]entity.DoctorProfile, error) {
	var out []entity.DoctorProfile
	for _, d := range f.doctors {
		if d.Specialization == specialization {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDoctorRepo) Update(_ *gorm.DB, profile *entity.DoctorProfile) error { return nil }
func (f *fakeDoctorRepo) Delete(_ *gorm.DB, userID uuid.UUID) error              { return nil }

// fakeAuditService records audit actions without touching storage.
type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogCreate(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action, _, _ string, _ interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditService) LogUpdate(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action, _, _ string, _, _ interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditService) LogDelete(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action, _, _ string, _ interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

type bookingFixture struct {
	usecase  *AppointmentUsecase
	repo     *fakeAppointmentRepo
	doctors  *fakeDoctorRepo
	audit    *fakeAuditService
	redis    *miniredis.Miniredis
	doctorID uuid.UUID
}

func setupBookingFixture(t *testing.T) *bookingFixture {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	repo := newFakeAppointmentRepo()
	doctors := newFakeDoctorRepo()
	audit := &fakeAuditService{}
	slotSvc := service.NewSlotReservationService(db, client, log)

	u := NewAppointmentUsecase(db, log, validator.NewValidator(), repo, doctors, slotSvc, audit)

	return &bookingFixture{
		usecase:  u,
		repo:     repo,
		doctors:  doctors,
		audit:    audit,
		redis:    mr,
		doctorID: doctors.addActiveDoctor("Dr. Alice Wong"),
	}
}

func bookRequest(doctorID uuid.UUID) *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:     "14:30",
		Symptoms: "Persistent cough",
	}
}

func TestBookSuccess(t *testing.T) {
	f := setupBookingFixture(t)
	patientID := uuid.New()

	resp, err := f.usecase.Book(context.Background(), patientID, bookRequest(f.doctorID))

	require.NoError(t, err)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, "normal", resp.Priority, "empty priority defaults to normal")
	assert.Equal(t, "14:30", resp.Time)
	assert.Equal(t, patientID, resp.PatientID)
	assert.Len(t, f.repo.appointments, 1)
	assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentBook)
}

func TestBookExplicitPriority(t *testing.T) {
	f := setupBookingFixture(t)

	req := bookRequest(f.doctorID)
	req.Priority = "emergency"

	resp, err := f.usecase.Book(context.Background(), uuid.New(), req)

	require.NoError(t, err)
	assert.Equal(t, "emergency", resp.Priority)
}

func TestBookUnknownPriorityRejected(t *testing.T) {
	f := setupBookingFixture(t)

	req := bookRequest(f.doctorID)
	req.Priority = "critical"

	_, err := f.usecase.Book(context.Background(), uuid.New(), req)

	assert.ErrorIs(t, err, ErrInvalidPriority)
	assert.Empty(t, f.repo.appointments)
}

func TestBookInvalidDate(t *testing.T) {
	f := setupBookingFixture(t)

	req := bookRequest(f.doctorID)
	req.Date = "07/09/2026"

	_, err := f.usecase.Book(context.Background(), uuid.New(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBookUnknownDoctor(t *testing.T) {
	f := setupBookingFixture(t)

	_, err := f.usecase.Book(context.Background(), uuid.New(), bookRequest(uuid.New()))

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBookDeactivatedDoctor(t *testing.T) {
	f := setupBookingFixture(t)

	inactive := false
	id := uuid.New()
	f.doctors.doctors[id] = &entity.DoctorProfile{
		UserID: id,
		User:   entity.User{ID: id, FullName: "Dr. Gone", IsActive: &inactive},
	}

	_, err := f.usecase.Book(context.Background(), uuid.New(), bookRequest(id))

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBookSlotAlreadyScheduled(t *testing.T) {
	f := setupBookingFixture(t)

	_, err := f.usecase.Book(context.Background(), uuid.New(), bookRequest(f.doctorID))
	require.NoError(t, err)

	_, err = f.usecase.Book(context.Background(), uuid.New(), bookRequest(f.doctorID))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Len(t, f.repo.appointments, 1)
}

func TestBookDifferentTimeTokensBothSucceed(t *testing.T) {
	f := setupBookingFixture(t)

	req1 := bookRequest(f.doctorID)
	req1.Time = "14:30"
	_, err := f.usecase.Book(context.Background(), uuid.New(), req1)
	require.NoError(t, err)

	// Equality on the time token is exact, "2:30 PM" is a different slot.
	req2 := bookRequest(f.doctorID)
	req2.Time = "2:30 PM"
	_, err = f.usecase.Book(context.Background(), uuid.New(), req2)
	assert.NoError(t, err)
}

func TestBookLosesRedisClaim(t *testing.T) {
	f := setupBookingFixture(t)

	req := bookRequest(f.doctorID)
	date, _ := time.Parse("2006-01-02", req.Date)

	// A competing booking holds the claim but has not committed yet.
	f.redis.Set(service.SlotKey(f.doctorID, date, req.Time), uuid.NewString())

	_, err := f.usecase.Book(context.Background(), uuid.New(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.repo.appointments)
}

func TestBookDuplicateKeyMapsToSlotTaken(t *testing.T) {
	f := setupBookingFixture(t)

	f.repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "appointments_scheduled_slot"}

	req := bookRequest(f.doctorID)
	_, err := f.usecase.Book(context.Background(), uuid.New(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)

	// The slot is genuinely booked, so the claim stays.
	date, _ := time.Parse("2006-01-02", req.Date)
	assert.True(t, f.redis.Exists(service.SlotKey(f.doctorID, date, req.Time)))
}

func TestBookDatabaseErrorReleasesClaim(t *testing.T) {
	f := setupBookingFixture(t)

	f.repo.createErr = errors.New("connection reset")

	req := bookRequest(f.doctorID)
	_, err := f.usecase.Book(context.Background(), uuid.New(), req)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotTaken)

	date, _ := time.Parse("2006-01-02", req.Date)
	assert.False(t, f.redis.Exists(service.SlotKey(f.doctorID, date, req.Time)))
}

func TestCancelReleasesSlotForRebooking(t *testing.T) {
	f := setupBookingFixture(t)
	patientID := uuid.New()

	resp, err := f.usecase.Book(context.Background(), patientID, bookRequest(f.doctorID))
	require.NoError(t, err)

	require.NoError(t, f.usecase.Cancel(context.Background(), patientID, resp.ID))
	assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentCancel)

	// Same slot is free again for another patient.
	_, err = f.usecase.Book(context.Background(), uuid.New(), bookRequest(f.doctorID))
	assert.NoError(t, err)
}

func TestCancelNotFound(t *testing.T) {
	f := setupBookingFixture(t)

	err := f.usecase.Cancel(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelNotOwned(t *testing.T) {
	f := setupBookingFixture(t)

	resp, err := f.usecase.Book(context.Background(), uuid.New(), bookRequest(f.doctorID))
	require.NoError(t, err)

	err = f.usecase.Cancel(context.Background(), uuid.New(), resp.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestCancelTwice(t *testing.T) {
	f := setupBookingFixture(t)
	patientID := uuid.New()

	resp, err := f.usecase.Book(context.Background(), patientID, bookRequest(f.doctorID))
	require.NoError(t, err)

	require.NoError(t, f.usecase.Cancel(context.Background(), patientID, resp.ID))

	err = f.usecase.Cancel(context.Background(), patientID, resp.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotOpen)
}

func TestCompleteByOwningDoctor(t *testing.T) {
	f := setupBookingFixture(t)

	resp, err := f.usecase.Book(context.Background(), uuid.New(), bookRequest(f.doctorID))
	require.NoError(t, err)

	require.NoError(t, f.usecase.Complete(context.Background(), f.doctorID, resp.ID))
	assert.Equal(t, entity.AppointmentStatusCompleted, f.repo.appointments[resp.ID].Status)

	err = f.usecase.Complete(context.Background(), f.doctorID, resp.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotOpen)
}

func TestCompleteByOtherDoctor(t *testing.T) {
	f := setupBookingFixture(t)

	resp, err := f.usecase.Book(context.Background(), uuid.New(), bookRequest(f.doctorID))
	require.NoError(t, err)

	err = f.usecase.Complete(context.Background(), uuid.New(), resp.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestSortAppointmentsOrdering(t *testing.T) {
	day1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	a := entity.Appointment{ID: uuid.New(), Date: day2, Time: "09:00", Priority: entity.PriorityEmergency}
	b := entity.Appointment{ID: uuid.New(), Date: day1, Time: "15:00", Priority: entity.PriorityNormal}
	c := entity.Appointment{ID: uuid.New(), Date: day1, Time: "09:00", Priority: entity.PriorityNormal}
	d := entity.Appointment{ID: uuid.New(), Date: day1, Time: "18:00", Priority: entity.PriorityUrgent}

	appointments := []entity.Appointment{a, b, c, d}
	SortAppointments(appointments)

	// Date first, then priority weight, then time token.
	assert.Equal(t, d.ID, appointments[0].ID)
	assert.Equal(t, c.ID, appointments[1].ID)
	assert.Equal(t, b.ID, appointments[2].ID)
	assert.Equal(t, a.ID, appointments[3].ID)
}

func TestSortAppointmentsStableOnTies(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	first := entity.Appointment{ID: uuid.New(), Date: day, Time: "09:00", Priority: entity.PriorityNormal}
	second := entity.Appointment{ID: uuid.New(), Date: day, Time: "09:00", Priority: entity.PriorityNormal}

	appointments := []entity.Appointment{first, second}
	SortAppointments(appointments)

	assert.Equal(t, first.ID, appointments[0].ID)
	assert.Equal(t, second.ID, appointments[1].ID)
}

func TestIsSlotAvailable(t *testing.T) {
	f := setupBookingFixture(t)

	req := bookRequest(f.doctorID)
	date, _ := time.Parse("2006-01-02", req.Date)

	available, err := f.usecase.IsSlotAvailable(context.Background(), f.doctorID, date, req.Time)
	require.NoError(t, err)
	assert.True(t, available)

	_, err = f.usecase.Book(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	available, err = f.usecase.IsSlotAvailable(context.Background(), f.doctorID, date, req.Time)
	require.NoError(t, err)
	assert.False(t, available)
}
