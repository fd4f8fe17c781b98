package controllers

import (
	"errors"
	"net/http"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalController struct {
	db *gorm.DB
}

func NewProfessionalController(db *gorm.DB) *ProfessionalController {
	return &ProfessionalController{db: db}
}

type CreateProfessionalInput struct {
	Name               string      `json:"name" binding:"required"`
	Phone              string      `json:"phone"`
	Email              string      `json:"email"`
	Role               string      `json:"role" binding:"omitempty,oneof=MANAGER STAFF"`
	WorkingDays        *int        `json:"workingDays"`
	ExternalCalendarID string      `json:"externalCalendarId"`
	ServiceIDs         []uuid.UUID `json:"serviceIds"`
}

type UpdateProfessionalInput struct {
	Name               *string      `json:"name"`
	Phone              *string      `json:"phone"`
	Email              *string      `json:"email"`
	Role               *string      `json:"role" binding:"omitempty,oneof=MANAGER STAFF"`
	WorkingDays        *int         `json:"workingDays"`
	ExternalCalendarID *string      `json:"externalCalendarId"`
	ServiceIDs         *[]uuid.UUID `json:"serviceIds"`
	IsActive           *bool        `json:"isActive"`
}

func (ctl *ProfessionalController) Create(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleStaff
	}
	workingDays := 127
	if input.WorkingDays != nil {
		if *input.WorkingDays < 0 || *input.WorkingDays > 127 {
			utils.RespondWithError(c, http.StatusBadRequest, "Working days bitset out of range")
			return
		}
		workingDays = *input.WorkingDays
	}

	professional := models.Professional{
		SalonID:            salonUUID,
		Name:               input.Name,
		Phone:              input.Phone,
		Email:              input.Email,
		Role:               role,
		WorkingDays:        workingDays,
		ExternalCalendarID: input.ExternalCalendarID,
		IsActive:           true,
	}

	if err := ctl.db.Create(&professional).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create professional")
		return
	}

	if len(input.ServiceIDs) > 0 {
		if !ctl.assignServices(c, salonUUID, &professional, input.ServiceIDs) {
			return
		}
	}

	c.JSON(http.StatusCreated, professional)
}

func (ctl *ProfessionalController) List(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var professionals []models.Professional
	if err := ctl.db.Preload("Services").Where("salon_id = ?", salonUUID).
		Find(&professionals).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve professionals")
		return
	}

	c.JSON(http.StatusOK, professionals)
}

func (ctl *ProfessionalController) Get(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	professionalUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var professional models.Professional
	err := ctl.db.Preload("Services").Preload("AvailabilityRules").
		Where("salon_id = ? AND id = ?", salonUUID, professionalUUID).
		First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, professional)
}

func (ctl *ProfessionalController) Update(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	professionalUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var professional models.Professional
	err := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, professionalUUID).
		First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		professional.Name = *input.Name
	}
	if input.Phone != nil {
		professional.Phone = *input.Phone
	}
	if input.Email != nil {
		professional.Email = *input.Email
	}
	if input.Role != nil {
		professional.Role = *input.Role
	}
	if input.WorkingDays != nil {
		if *input.WorkingDays < 0 || *input.WorkingDays > 127 {
			utils.RespondWithError(c, http.StatusBadRequest, "Working days bitset out of range")
			return
		}
		professional.WorkingDays = *input.WorkingDays
	}
	if input.ExternalCalendarID != nil {
		professional.ExternalCalendarID = *input.ExternalCalendarID
	}
	if input.IsActive != nil {
		professional.IsActive = *input.IsActive
	}

	if err := ctl.db.Save(&professional).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update professional")
		return
	}

	if input.ServiceIDs != nil {
		if !ctl.assignServices(c, salonUUID, &professional, *input.ServiceIDs) {
			return
		}
	}

	c.JSON(http.StatusOK, professional)
}

// Deactivate flips the active flag; staff records are never deleted.
func (ctl *ProfessionalController) Deactivate(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	professionalUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := ctl.db.Model(&models.Professional{}).
		Where("salon_id = ? AND id = ?", salonUUID, professionalUUID).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate professional")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Professional deactivated"})
}

func (ctl *ProfessionalController) assignServices(c *gin.Context, salonUUID uuid.UUID, professional *models.Professional, serviceIDs []uuid.UUID) bool {
	var services []models.Service
	if err := ctl.db.Where("salon_id = ? AND id IN ?", salonUUID, serviceIDs).
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve services")
		return false
	}
	if len(services) != len(serviceIDs) {
		utils.RespondWithError(c, http.StatusBadRequest, "One or more services not found for this salon")
		return false
	}
	if err := ctl.db.Model(professional).Association("Services").Replace(services); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to assign services")
		return false
	}
	professional.Services = services
	return true
}
