package repositories

import (
	"context"
	"time"

	"glowdesk-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleOverrideRepository struct {
	db *gorm.DB
}

func NewScheduleOverrideRepository(db *gorm.DB) *ScheduleOverrideRepository {
	return &ScheduleOverrideRepository{db: db}
}

// OverlappingOverrides returns overrides intersecting [from, to): both the
// professional's own and salon-wide ones (professional_id IS NULL).
func (r *ScheduleOverrideRepository) OverlappingOverrides(ctx context.Context, salonID, professionalID uuid.UUID, from, to time.Time) ([]models.ScheduleOverride, error) {
	var overrides []models.ScheduleOverride
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND (professional_id IS NULL OR professional_id = ?) AND starts_at < ? AND ends_at > ?",
			salonID, professionalID, to, from).
		Order("starts_at ASC").
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	return overrides, nil
}
