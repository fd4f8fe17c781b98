package controllers

import (
	"errors"
	"net/http"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleController manages the inputs of the availability engine: weekly
// rules per professional and one-off overrides.
type ScheduleController struct {
	db *gorm.DB
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{db: db}
}

type CreateRuleInput struct {
	ProfessionalID uuid.UUID `json:"professionalId" binding:"required"`
	DayOfWeek      *int      `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime      string    `json:"startTime" binding:"required"`
	EndTime        string    `json:"endTime" binding:"required"`
	IsBreak        bool      `json:"isBreak"`
}

type CreateOverrideInput struct {
	ProfessionalID *uuid.UUID `json:"professionalId"` // empty = salon-wide
	StartsAt       time.Time  `json:"startsAt" binding:"required"`
	EndsAt         time.Time  `json:"endsAt" binding:"required"`
	Reason         string     `json:"reason"`
}

func (ctl *ScheduleController) CreateRule(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input CreateRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateClockRange(input.StartTime, input.EndTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Start time must be a valid HH:mm before end time")
		return
	}

	var professional models.Professional
	if err := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, input.ProfessionalID).
		First(&professional).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	rule := models.AvailabilityRule{
		SalonID:        salonUUID,
		ProfessionalID: professional.ID,
		DayOfWeek:      *input.DayOfWeek,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		IsBreak:        input.IsBreak,
	}
	if err := ctl.db.Create(&rule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create availability rule")
		return
	}

	c.JSON(http.StatusCreated, rule)
}

func (ctl *ScheduleController) ListRules(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	q := ctl.db.Where("salon_id = ?", salonUUID)
	if pid := c.Query("professionalId"); pid != "" {
		professionalUUID, err := uuid.Parse(pid)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid professionalId format")
			return
		}
		q = q.Where("professional_id = ?", professionalUUID)
	}

	var rules []models.AvailabilityRule
	if err := q.Order("day_of_week ASC, start_time ASC").Find(&rules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve availability rules")
		return
	}

	c.JSON(http.StatusOK, rules)
}

func (ctl *ScheduleController) DeleteRule(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	ruleUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, ruleUUID).
		Delete(&models.AvailabilityRule{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete availability rule")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Availability rule not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability rule deleted"})
}

func (ctl *ScheduleController) CreateOverride(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input CreateOverrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.StartsAt.Before(input.EndsAt) {
		utils.RespondWithError(c, http.StatusBadRequest, "Override start must be before end")
		return
	}

	if input.ProfessionalID != nil {
		var professional models.Professional
		if err := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, *input.ProfessionalID).
			First(&professional).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	override := models.ScheduleOverride{
		SalonID:        salonUUID,
		ProfessionalID: input.ProfessionalID,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		Reason:         input.Reason,
	}
	if err := ctl.db.Create(&override).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create override")
		return
	}

	c.JSON(http.StatusCreated, override)
}

func (ctl *ScheduleController) ListOverrides(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	q := ctl.db.Where("salon_id = ?", salonUUID)
	if pid := c.Query("professionalId"); pid != "" {
		professionalUUID, err := uuid.Parse(pid)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid professionalId format")
			return
		}
		q = q.Where("professional_id IS NULL OR professional_id = ?", professionalUUID)
	}

	var overrides []models.ScheduleOverride
	if err := q.Order("starts_at ASC").Find(&overrides).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve overrides")
		return
	}

	c.JSON(http.StatusOK, overrides)
}

func (ctl *ScheduleController) DeleteOverride(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	overrideUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, overrideUUID).
		Delete(&models.ScheduleOverride{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete override")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Override not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Override deleted"})
}
