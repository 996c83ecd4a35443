package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment does not belong to you")
	ErrAppointmentNotOpen  = errors.New("appointment is no longer scheduled")
	ErrSlotTaken           = errors.New("this slot is already booked")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidPriority     = errors.New("invalid priority, expected emergency, urgent or normal")
	ErrDoctorNotFound      = errors.New("doctor not found")
)

type AppointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	validate        *validator.CustomValidator
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	slotSvc         *service.SlotReservationService
	auditSvc        service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	slotSvc *service.SlotReservationService,
	auditSvc service.AuditService,
) *AppointmentUsecase {
	return &AppointmentUsecase{
		db:              db,
		log:             log,
		validate:        validate,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		slotSvc:         slotSvc,
		auditSvc:        auditSvc,
	}
}

// Book creates a scheduled appointment if the requested slot is free.
// Availability is exact equality on (doctor, date, time token). The flow is
// three layers deep: a read-side pre-check, an atomic Redis claim so only one
// of any concurrent bookings proceeds, and finally the partial unique index
// which backstops the invariant even if Redis is cleared.
func (u *AppointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, request *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := u.validate.Validate(request); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", request.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	priority := entity.AppointmentPriority(request.Priority)
	if priority == "" {
		priority = entity.PriorityNormal
	}
	if !entity.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, request.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", request.DoctorID, err)
		return nil, err
	}
	if doctor == nil || doctor.User.IsActive == nil || !*doctor.User.IsActive {
		return nil, ErrDoctorNotFound
	}

	// Read-side pre-check. Cheap rejection for the common case; the claim
	// and the unique index handle the race.
	existing, err := u.appointmentRepo.FindScheduledSlot(db, request.DoctorID, date, request.Time)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: patientID,
		DoctorID:  request.DoctorID,
		Date:      date,
		Time:      request.Time,
		Status:    entity.AppointmentStatusScheduled,
		Priority:  priority,
		Symptoms:  request.Symptoms,
	}

	if err := u.slotSvc.ClaimSlot(ctx, request.DoctorID, date, request.Time, appointment.ID); err != nil {
		if errors.Is(err, service.ErrSlotClaimed) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		if isDuplicateKeyError(err, "appointments_scheduled_slot") {
			// Slot genuinely booked by a competing writer; the Redis claim
			// now reflects reality, leave it in place.
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		u.slotSvc.ReleaseSlot(ctx, request.DoctorID, date, request.Time)
		return nil, err
	}

	if err := u.auditSvc.LogCreate(ctx, db, &patientID, entity.AuditActionAppointmentBook, "appointments", appointment.ID.String(), appointment); err != nil {
		u.log.Warnf("Failed to write audit log for booking %s: %+v", appointment.ID, err)
	}

	appointment.Doctor = *doctor
	return converter.AppointmentToResponse(appointment), nil
}

// Cancel transitions the caller's scheduled appointment to cancelled and
// frees the slot. The conditional update reports zero rows when the
// appointment already left the scheduled state, which kills the
// double-cancel race.
func (u *AppointmentUsecase) Cancel(ctx context.Context, patientID, appointmentID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return ErrAppointmentNotOwned
	}

	rows, err := u.appointmentRepo.UpdateStatusIfScheduled(db, appointmentID, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotOpen
	}

	u.slotSvc.ReleaseSlot(ctx, appointment.DoctorID, appointment.Date, appointment.Time)

	if err := u.auditSvc.LogUpdate(ctx, db, &patientID, entity.AuditActionAppointmentCancel, "appointments", appointmentID.String(),
		map[string]interface{}{"status": entity.AppointmentStatusScheduled},
		map[string]interface{}{"status": entity.AppointmentStatusCancelled}); err != nil {
		u.log.Warnf("Failed to write audit log for cancel %s: %+v", appointmentID, err)
	}

	return nil
}

// Complete marks one of the doctor's own scheduled appointments as done.
func (u *AppointmentUsecase) Complete(ctx context.Context, doctorID, appointmentID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return ErrAppointmentNotOwned
	}

	rows, err := u.appointmentRepo.UpdateStatusIfScheduled(db, appointmentID, entity.AppointmentStatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotOpen
	}

	u.slotSvc.ReleaseSlot(ctx, appointment.DoctorID, appointment.Date, appointment.Time)

	if err := u.auditSvc.LogUpdate(ctx, db, &doctorID, entity.AuditActionAppointmentDone, "appointments", appointmentID.String(),
		map[string]interface{}{"status": entity.AppointmentStatusScheduled},
		map[string]interface{}{"status": entity.AppointmentStatusCompleted}); err != nil {
		u.log.Warnf("Failed to write audit log for complete %s: %+v", appointmentID, err)
	}

	return nil
}

// ListUpcoming returns the patient's scheduled appointments sorted by date,
// then priority weight, then time token. The sort is stable, so appointments
// that tie on all three keys keep their storage order.
func (u *AppointmentUsecase) ListUpcoming(ctx context.Context, patientID uuid.UUID) (*dto.UpcomingAppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	appointments, err := u.appointmentRepo.FindScheduledByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list scheduled appointments: %+v", err)
		return nil, err
	}

	SortAppointments(appointments)

	items := make([]dto.UpcomingAppointmentResponse, 0, len(appointments))
	for i := range appointments {
		items = append(items, *converter.AppointmentToUpcomingResponse(&appointments[i]))
	}

	return &dto.UpcomingAppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	}, nil
}

// SortAppointments orders appointments by (date, priority rank, time token),
// keeping the incoming order for full ties.
func SortAppointments(appointments []entity.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		a, b := &appointments[i], &appointments[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.PriorityRank() != b.PriorityRank() {
			return a.PriorityRank() < b.PriorityRank()
		}
		return a.Time < b.Time
	})
}

// ListMine splits the patient's full appointment history into upcoming and
// past buckets. An appointment is upcoming while it is scheduled and its date
// has not passed.
func (u *AppointmentUsecase) ListMine(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	appointments, err := u.appointmentRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)

	var upcoming, past []entity.Appointment
	for _, a := range appointments {
		if a.IsScheduled() && !a.Date.Before(today) {
			upcoming = append(upcoming, a)
		} else {
			past = append(past, a)
		}
	}

	SortAppointments(upcoming)

	return &dto.AppointmentListResponse{
		Upcoming: converter.AppointmentsToResponses(upcoming),
		Past:     converter.AppointmentsToResponses(past),
		Total:    len(appointments),
	}, nil
}

// ListAvailableDoctors returns the active roster, optionally filtered by
// specialization, with each doctor's booked time tokens for the requested
// date so clients can grey out taken slots.
func (u *AppointmentUsecase) ListAvailableDoctors(ctx context.Context, dateStr, specialization string) (*dto.DoctorAvailabilityListResponse, error) {
	db := u.db.WithContext(ctx)

	var date time.Time
	if dateStr != "" {
		var err error
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	var doctors []entity.DoctorProfile
	var err error
	if specialization != "" {
		doctors, err = u.doctorRepo.FindBySpecialization(db, specialization)
	} else {
		doctors, err = u.doctorRepo.FindAll(db)
	}
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	items := make([]dto.DoctorAvailabilityResponse, 0, len(doctors))
	for i := range doctors {
		doctor := &doctors[i]

		bookedSlots := []string{}
		if !date.IsZero() {
			bookedSlots, err = u.appointmentRepo.FindScheduledTimes(db, doctor.UserID, date)
			if err != nil {
				u.log.Warnf("Failed to list booked slots for doctor %s: %+v", doctor.UserID, err)
				return nil, err
			}
			if bookedSlots == nil {
				bookedSlots = []string{}
			}
		}

		items = append(items, dto.DoctorAvailabilityResponse{
			ID:              doctor.UserID,
			Name:            doctor.User.FullName,
			Specialization:  doctor.Specialization,
			Qualification:   doctor.Qualification,
			ExperienceYears: doctor.ExperienceYears,
			ConsultationFee: doctor.ConsultationFee,
			BookedSlots:     bookedSlots,
		})
	}

	return &dto.DoctorAvailabilityListResponse{
		Doctors: items,
		Total:   len(items),
	}, nil
}

// ListForDoctor returns the doctor's appointments for one day, today when no
// date is given.
func (u *AppointmentUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID, dateStr string) ([]dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	date := time.Now().Truncate(24 * time.Hour)
	if dateStr != "" {
		var err error
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	appointments, err := u.appointmentRepo.FindByDoctorAndDate(db, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to list doctor appointments: %+v", err)
		return nil, err
	}

	SortAppointments(appointments)

	return converter.AppointmentsToResponses(appointments), nil
}

// IsSlotAvailable answers the exact-match availability question for a single
// (doctor, date, time) triple.
func (u *AppointmentUsecase) IsSlotAvailable(ctx context.Context, doctorID uuid.UUID, date time.Time, timeToken string) (bool, error) {
	existing, err := u.appointmentRepo.FindScheduledSlot(u.db.WithContext(ctx), doctorID, date, timeToken)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}
