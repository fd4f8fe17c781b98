package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultSlotGranularityMinutes = 30

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string
	Phone   string
	Email   string

	// IANA zone name. All slot math for this salon happens in this zone
	// because business hours are local wall-clock times.
	Timezone string `gorm:"default:'UTC'"`

	// BusinessHours maps day-of-week ("0".."6", 0 = Sunday) to
	// {"start": "HH:mm", "end": "HH:mm"}. A missing day means closed.
	BusinessHours JSONB `gorm:"type:jsonb;default:'{}'"`

	// Settings is an open key/value map. Known keys: "currency",
	// "reminderMessage", "bookingLeadTimeMinutes".
	Settings JSONB `gorm:"type:jsonb;default:'{}'"`

	CancellationPolicy     string `gorm:"type:text"`
	SlotGranularityMinutes int    `gorm:"default:30"`

	IsActive bool `gorm:"default:true"`

	Users         []User         `gorm:"foreignKey:SalonID"`
	Professionals []Professional `gorm:"foreignKey:SalonID"`
	Customers     []Customer     `gorm:"foreignKey:SalonID"`
	Services      []Service      `gorm:"foreignKey:SalonID"`
	Appointments  []Appointment  `gorm:"foreignKey:SalonID"`

	gorm.Model
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Location resolves the salon's time zone, falling back to UTC when the
// stored name does not load.
func (s *Salon) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil || loc == nil {
		return time.UTC
	}
	return loc
}

// Granularity returns the salon's slot step in minutes.
func (s *Salon) Granularity() int {
	if s.SlotGranularityMinutes <= 0 {
		return DefaultSlotGranularityMinutes
	}
	return s.SlotGranularityMinutes
}
