package repositories

import (
	"context"

	"glowdesk-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository resolves the salon-scoped entities a booking references.
// Every lookup is tenant-guarded by salon id.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetSalon(ctx context.Context, id uuid.UUID) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *CatalogRepository) GetProfessional(ctx context.Context, salonID, id uuid.UUID) (*models.Professional, error) {
	var professional models.Professional
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id = ?", salonID, id).
		First(&professional).Error
	if err != nil {
		return nil, err
	}
	return &professional, nil
}

func (r *CatalogRepository) GetService(ctx context.Context, salonID, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id = ?", salonID, id).
		First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *CatalogRepository) GetCustomer(ctx context.Context, salonID, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id = ?", salonID, id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
