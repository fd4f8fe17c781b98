// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ServiceController struct {
	db *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{db: db}
}

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Duration    int     `json:"duration" binding:"required,min=1"` // in minutes
	Category    string  `json:"category"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
}

// Create creates a new service for the salon
func (ctl *ServiceController) Create(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		SalonID:     salonUUID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
		Category:    input.Category,
		IsActive:    true,
	}

	if err := ctl.db.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// List retrieves all services for the salon
func (ctl *ServiceController) List(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := ctl.db.Where("salon_id = ?", salonUUID).Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// Get retrieves a specific service by ID
func (ctl *ServiceController) Get(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// Update updates an existing service
func (ctl *ServiceController) Update(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.Duration != nil {
		if *input.Duration <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Duration must be positive")
			return
		}
		service.Duration = *input.Duration
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := ctl.db.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// Delete soft deletes a service
func (ctl *ServiceController) Delete(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	serviceUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, serviceUUID).
		Delete(&models.Service{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
