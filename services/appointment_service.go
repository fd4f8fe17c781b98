package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// syncTimeout bounds the best-effort external sync attempt. Sync never holds
// the per-professional booking lock.
const syncTimeout = 10 * time.Second

// AppointmentService orchestrates create/reschedule/cancel, enforcing
// conflict-freedom per professional. The check-then-write sequence is
// serialized through a per-professional mutex so two simultaneous requests
// for overlapping intervals cannot both pass the conflict check; requests for
// different professionals never block each other.
type AppointmentService struct {
	appointments AppointmentStore
	catalog      CatalogStore
	availability *AvailabilityService
	sync         ExternalSync
	logger       *zap.Logger

	locks sync.Map // professional id -> *sync.Mutex
}

func NewAppointmentService(
	appointments AppointmentStore,
	catalog CatalogStore,
	availability *AvailabilityService,
	external ExternalSync,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		catalog:      catalog,
		availability: availability,
		sync:         external,
		logger:       logger,
	}
}

type CreateAppointmentInput struct {
	CustomerID     uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	StartsAt       time.Time
	Notes          string
}

type UpdateAppointmentInput struct {
	ProfessionalID *uuid.UUID
	ServiceID      *uuid.UUID
	StartsAt       *time.Time
	Notes          *string
}

// FindConflicts returns the non-cancelled appointments of the professional
// overlapping [startsAt, endsAt), excluding the appointment being rescheduled
// when excludeID is non-nil. Any non-empty result rejects the booking.
func (s *AppointmentService) FindConflicts(ctx context.Context, professionalID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) ([]models.Appointment, error) {
	return s.appointments.FindOverlapping(ctx, professionalID, startsAt, endsAt, excludeID)
}

// Create books a new appointment. EndsAt is derived from the service
// duration. On success the appointment is SCHEDULED and external sync is
// kicked off without blocking the caller.
func (s *AppointmentService) Create(ctx context.Context, salonID uuid.UUID, in CreateAppointmentInput) (*models.Appointment, error) {
	if in.StartsAt.IsZero() {
		return nil, &ValidationError{Reason: "start time is required"}
	}

	salon, err := s.catalog.GetSalon(ctx, salonID)
	if err != nil {
		return nil, translateNotFound(err, "salon", salonID)
	}
	customer, err := s.catalog.GetCustomer(ctx, salonID, in.CustomerID)
	if err != nil {
		return nil, translateNotFound(err, "customer", in.CustomerID)
	}
	professional, err := s.catalog.GetProfessional(ctx, salonID, in.ProfessionalID)
	if err != nil {
		return nil, translateNotFound(err, "professional", in.ProfessionalID)
	}
	service, err := s.catalog.GetService(ctx, salonID, in.ServiceID)
	if err != nil {
		return nil, translateNotFound(err, "service", in.ServiceID)
	}
	if service.Duration <= 0 {
		return nil, &ValidationError{Reason: "service has no usable duration"}
	}

	startsAt := in.StartsAt
	endsAt := utils.AddMinutes(startsAt, service.Duration)

	mu := s.lockFor(professional.ID)
	mu.Lock()
	defer mu.Unlock()

	conflicts, err := s.FindConflicts(ctx, professional.ID, startsAt, endsAt, nil)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	covered, err := s.availability.CoversInterval(ctx, salon, professional, startsAt, endsAt)
	if err != nil {
		return nil, err
	}
	if !covered {
		return nil, &ValidationError{Reason: "requested time is outside the professional's working hours"}
	}

	appt := &models.Appointment{
		SalonID:        salon.ID,
		CustomerID:     customer.ID,
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		Status:         models.AppointmentScheduled,
		Notes:          in.Notes,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.syncAsync("create", appt)
	return appt, nil
}

// Update reschedules an appointment. EndsAt is recomputed when the service or
// start changes and the conflict check re-runs excluding the appointment
// itself, so moving an appointment within its own old interval succeeds.
func (s *AppointmentService) Update(ctx context.Context, salonID, id uuid.UUID, in UpdateAppointmentInput) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translateNotFound(err, "appointment", id)
	}
	if appt.Status == models.AppointmentCancelled {
		return nil, &ValidationError{Reason: "cancelled appointments cannot be rescheduled"}
	}

	salon, err := s.catalog.GetSalon(ctx, salonID)
	if err != nil {
		return nil, translateNotFound(err, "salon", salonID)
	}

	if in.ProfessionalID != nil {
		if _, err := s.catalog.GetProfessional(ctx, salonID, *in.ProfessionalID); err != nil {
			return nil, translateNotFound(err, "professional", *in.ProfessionalID)
		}
		appt.ProfessionalID = *in.ProfessionalID
	}
	if in.ServiceID != nil {
		appt.ServiceID = *in.ServiceID
	}
	if in.StartsAt != nil {
		appt.StartsAt = *in.StartsAt
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}

	service, err := s.catalog.GetService(ctx, salonID, appt.ServiceID)
	if err != nil {
		return nil, translateNotFound(err, "service", appt.ServiceID)
	}
	if service.Duration <= 0 {
		return nil, &ValidationError{Reason: "service has no usable duration"}
	}
	appt.EndsAt = utils.AddMinutes(appt.StartsAt, service.Duration)

	professional, err := s.catalog.GetProfessional(ctx, salonID, appt.ProfessionalID)
	if err != nil {
		return nil, translateNotFound(err, "professional", appt.ProfessionalID)
	}

	mu := s.lockFor(appt.ProfessionalID)
	mu.Lock()
	defer mu.Unlock()

	excludeID := appt.ID
	conflicts, err := s.FindConflicts(ctx, appt.ProfessionalID, appt.StartsAt, appt.EndsAt, &excludeID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	covered, err := s.availability.CoversInterval(ctx, salon, professional, appt.StartsAt, appt.EndsAt)
	if err != nil {
		return nil, err
	}
	if !covered {
		return nil, &ValidationError{Reason: "requested time is outside the professional's working hours"}
	}

	if err := s.appointments.Save(ctx, appt); err != nil {
		return nil, err
	}

	s.syncAsync("update", appt)
	return appt, nil
}

// Cancel soft-cancels: the status flips to CANCELLED, the record stays, and
// the interval stops occupying the calendar. The external calendar entry is
// removed after the write, best-effort.
func (s *AppointmentService) Cancel(ctx context.Context, salonID, id uuid.UUID) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translateNotFound(err, "appointment", id)
	}
	if appt.Status == models.AppointmentCancelled {
		return appt, nil
	}

	appt.Status = models.AppointmentCancelled
	if err := s.appointments.Save(ctx, appt); err != nil {
		return nil, err
	}

	s.syncAsync("delete", appt)
	return appt, nil
}

// Complete marks a kept appointment COMPLETED.
func (s *AppointmentService) Complete(ctx context.Context, salonID, id uuid.UUID) (*models.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translateNotFound(err, "appointment", id)
	}
	if appt.Status == models.AppointmentCancelled {
		return nil, &ValidationError{Reason: "cancelled appointments cannot be completed"}
	}

	appt.Status = models.AppointmentCompleted
	if err := s.appointments.Save(ctx, appt); err != nil {
		return nil, err
	}

	s.syncAsync("update", appt)
	return appt, nil
}

// Delete removes the record permanently. Sync-delete is attempted and awaited
// first: downstream calendar systems cannot resolve an id that no longer
// exists locally. A sync failure is logged and the delete proceeds.
func (s *AppointmentService) Delete(ctx context.Context, salonID, id uuid.UUID) error {
	appt, err := s.appointments.GetByID(ctx, salonID, id)
	if err != nil {
		return translateNotFound(err, "appointment", id)
	}

	if s.sync != nil {
		syncCtx, cancel := context.WithTimeout(ctx, syncTimeout)
		if err := s.sync.SyncDelete(syncCtx, appt); err != nil {
			s.logSyncFailure("delete", appt, err)
		}
		cancel()
	}

	return s.appointments.Delete(ctx, appt)
}

// syncAsync pushes the appointment to the external system on a detached
// goroutine: at most one attempt, no retry, failure logged and swallowed.
// Booking success is independent of sync success.
func (s *AppointmentService) syncAsync(op string, appt *models.Appointment) {
	if s.sync == nil {
		return
	}
	snapshot := *appt
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		var err error
		switch op {
		case "create":
			err = s.sync.SyncCreate(ctx, &snapshot)
		case "update":
			err = s.sync.SyncUpdate(ctx, &snapshot)
		case "delete":
			err = s.sync.SyncDelete(ctx, &snapshot)
		}
		if err != nil {
			s.logSyncFailure(op, &snapshot, err)
		}
	}()
}

func (s *AppointmentService) logSyncFailure(op string, appt *models.Appointment, err error) {
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		err = &SyncError{Op: op, AppointmentID: appt.ID, Err: err}
	}
	s.logger.Warn("external sync failed",
		zap.String("op", op),
		zap.String("appointment_id", appt.ID.String()),
		zap.Error(err))
}

func (s *AppointmentService) lockFor(professionalID uuid.UUID) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(professionalID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// translateNotFound maps the store's record-not-found onto the typed business
// error; everything else passes through untouched.
func translateNotFound(err error, resource string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
