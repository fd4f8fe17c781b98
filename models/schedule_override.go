package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleOverride is a one-off carve-out (vacation, blackout) that removes
// availability for its interval, taking precedence over availability rules.
// A nil ProfessionalID applies the override salon-wide.
type ScheduleOverride struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	SalonID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProfessionalID *uuid.UUID `gorm:"type:uuid;index"`

	StartsAt time.Time `gorm:"index;not null"`
	EndsAt   time.Time `gorm:"not null"`
	Reason   string

	gorm.Model
}

func (o *ScheduleOverride) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// AppliesTo reports whether the override affects the given professional.
func (o *ScheduleOverride) AppliesTo(professionalID uuid.UUID) bool {
	return o.ProfessionalID == nil || *o.ProfessionalID == professionalID
}
