package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentCancelled = "CANCELLED"
	AppointmentCompleted = "COMPLETED"
)

// Appointment owns its [StartsAt, EndsAt) pair; EndsAt is always derived from
// the service duration, never set independently. Professional, service and
// customer are referenced by id only so conflict checks stay a pure interval
// query keyed by professional id.
type Appointment struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID        uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID      uuid.UUID `gorm:"type:uuid;index;not null"`

	StartsAt time.Time `gorm:"index;not null"`
	EndsAt   time.Time `gorm:"not null"`
	Status   string    `gorm:"type:varchar(20);index;default:'SCHEDULED'"`
	Notes    string

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// OccupiesCalendar reports whether the appointment still blocks its interval
// on the professional's calendar.
func (a *Appointment) OccupiesCalendar() bool {
	return a.Status != AppointmentCancelled
}
