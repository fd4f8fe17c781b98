package services

import (
	"fmt"

	"glowdesk-backend/models"

	"github.com/google/uuid"
)

// Expected business failures are typed values returned to the caller, never
// panics. Controllers map them to HTTP statuses; anything else is a 500.

// ValidationError reports malformed input: bad duration, start >= end,
// a time outside the professional's open hours.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports an unresolvable salon/professional/service/customer/
// appointment reference.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	if e.ID == uuid.Nil {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError carries the appointments that overlap a proposed interval.
// A non-empty conflict set always rejects the booking.
type ConflictError struct {
	Conflicts []models.Appointment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested time overlaps %d existing appointment(s)", len(e.Conflicts))
}

// SyncError reports an external calendar/CRM failure. It is always non-fatal:
// the lifecycle manager logs it and never returns it to callers.
type SyncError struct {
	Op            string
	AppointmentID uuid.UUID
	Err           error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("external sync %s for appointment %s: %v", e.Op, e.AppointmentID, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
