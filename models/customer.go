package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_salon_phone,priority:1"`

	Name string `gorm:"not null"`

	// Phone is the primary identity of a customer within a salon, stored in
	// normalized +digits form. Customers are never merged across salons.
	Phone string `gorm:"not null;uniqueIndex:idx_salon_phone,priority:2"`
	Email string

	// Preferences is an open key/value map. Known keys: "preferredProfessional",
	// "language", "marketingOptIn".
	Preferences JSONB `gorm:"type:jsonb;default:'{}'"`

	Notes       string
	TotalVisits int `gorm:"default:0"`
	LastVisit   *time.Time
	IsActive    bool `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
