package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

type Professional struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name  string `gorm:"not null"`
	Phone string
	Email string
	Role  string `gorm:"type:varchar(20);default:'STAFF'"`

	// WorkingDays is a bitset of weekdays the professional can be scheduled
	// on, bit 0 = Sunday. 127 = all seven days.
	WorkingDays        int `gorm:"default:127"`
	ExternalCalendarID string

	IsActive bool `gorm:"default:true"`

	Services          []Service          `gorm:"many2many:professional_services"`
	AvailabilityRules []AvailabilityRule `gorm:"foreignKey:ProfessionalID"`

	gorm.Model
}

func (p *Professional) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// WorksOn reports whether the weekday (0 = Sunday .. 6 = Saturday) is enabled
// in the working-day bitset.
func (p *Professional) WorksOn(weekday int) bool {
	if weekday < 0 || weekday > 6 {
		return false
	}
	return p.WorkingDays&(1<<uint(weekday)) != 0
}
