package services

import (
	"context"
	"time"

	"glowdesk-backend/models"

	"github.com/google/uuid"
)

// Storage collaborators of the scheduling core. Each is injected explicitly;
// the engine keeps no cache between calls, so every call reflects current
// store state.

type AvailabilityRuleStore interface {
	// RulesForDay returns all rules (working windows and breaks) for the
	// professional on the given weekday, 0 = Sunday.
	RulesForDay(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) ([]models.AvailabilityRule, error)
}

type ScheduleOverrideStore interface {
	// OverlappingOverrides returns salon-wide and professional-specific
	// overrides intersecting [from, to).
	OverlappingOverrides(ctx context.Context, salonID, professionalID uuid.UUID, from, to time.Time) ([]models.ScheduleOverride, error)
}

type AppointmentStore interface {
	// FindOverlapping returns non-cancelled appointments of the professional
	// whose interval overlaps [startsAt, endsAt), half-open, excluding the
	// given appointment id when non-nil.
	FindOverlapping(ctx context.Context, professionalID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) ([]models.Appointment, error)

	// ListBetween returns non-cancelled appointments of the professional
	// intersecting [from, to), ordered by start time.
	ListBetween(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]models.Appointment, error)

	GetByID(ctx context.Context, salonID, id uuid.UUID) (*models.Appointment, error)
	Create(ctx context.Context, appt *models.Appointment) error
	Save(ctx context.Context, appt *models.Appointment) error
	// Delete removes the record permanently. Callers must have attempted
	// sync-delete first.
	Delete(ctx context.Context, appt *models.Appointment) error
}

// CatalogStore resolves the salon-scoped entities a booking references.
type CatalogStore interface {
	GetSalon(ctx context.Context, id uuid.UUID) (*models.Salon, error)
	GetProfessional(ctx context.Context, salonID, id uuid.UUID) (*models.Professional, error)
	GetService(ctx context.Context, salonID, id uuid.UUID) (*models.Service, error)
	GetCustomer(ctx context.Context, salonID, id uuid.UUID) (*models.Customer, error)
}

// ExternalSync pushes appointment state to an external calendar/CRM. Each
// call is independently fallible and best-effort; failures are logged by the
// lifecycle manager, never surfaced to booking callers.
type ExternalSync interface {
	SyncCreate(ctx context.Context, appt *models.Appointment) error
	SyncUpdate(ctx context.Context, appt *models.Appointment) error
	SyncDelete(ctx context.Context, appt *models.Appointment) error
}
