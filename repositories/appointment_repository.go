package repositories

import (
	"context"
	"time"

	"glowdesk-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentRepository backs the scheduling core's appointment store with
// GORM. Conflict queries use the half-open overlap rule: an interval
// [a, b) overlaps [c, d) iff a < d and c < b.
type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) FindOverlapping(ctx context.Context, professionalID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) ([]models.Appointment, error) {
	q := r.db.WithContext(ctx).
		Where("professional_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
			professionalID, models.AppointmentCancelled, endsAt, startsAt)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var conflicts []models.Appointment
	if err := q.Order("starts_at ASC").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *AppointmentRepository) ListBetween(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
			professionalID, models.AppointmentCancelled, to, from).
		Order("starts_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, salonID, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id = ?", salonID, id).
		First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *AppointmentRepository) Save(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

// Delete is a hard delete, bypassing the soft-delete column. The lifecycle
// manager has already attempted sync-delete by the time this runs.
func (r *AppointmentRepository) Delete(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Unscoped().Delete(appt).Error
}
