package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityRule is one recurring weekly window on a professional's
// calendar. A non-break rule is a working window; a break rule carves time out
// of a working window and only takes effect when fully contained in one.
type AvailabilityRule struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null"`

	DayOfWeek int    `gorm:"not null"`                 // 0 = Sunday .. 6 = Saturday
	StartTime string `gorm:"type:varchar(5);not null"` // "HH:mm", salon-local
	EndTime   string `gorm:"type:varchar(5);not null"` // "HH:mm", salon-local
	IsBreak   bool   `gorm:"default:false"`

	gorm.Model
}

func (r *AvailabilityRule) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
