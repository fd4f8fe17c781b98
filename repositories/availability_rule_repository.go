package repositories

import (
	"context"

	"glowdesk-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRuleRepository struct {
	db *gorm.DB
}

func NewAvailabilityRuleRepository(db *gorm.DB) *AvailabilityRuleRepository {
	return &AvailabilityRuleRepository{db: db}
}

func (r *AvailabilityRuleRepository) RulesForDay(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) ([]models.AvailabilityRule, error) {
	var rules []models.AvailabilityRule
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND day_of_week = ?", professionalID, dayOfWeek).
		Order("start_time ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}
