package controllers

import (
	"net/http"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileController struct {
	db *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

type UpdateSalonProfileInput struct {
	Name               *string `json:"name"`
	Address            *string `json:"address"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email"`
	Timezone           *string `json:"timezone"`
	CancellationPolicy *string `json:"cancellationPolicy"`
}

func (ctl *ProfileController) GetProfile(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var salon models.Salon
	if err := ctl.db.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                   salon.Name,
		"address":                salon.Address,
		"phone":                  salon.Phone,
		"email":                  salon.Email,
		"timezone":               salon.Timezone,
		"businessHours":          salon.BusinessHours,
		"settings":               salon.Settings,
		"cancellationPolicy":     salon.CancellationPolicy,
		"slotGranularityMinutes": salon.Granularity(),
	})
}

func (ctl *ProfileController) UpdateSalonProfile(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input UpdateSalonProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var salon models.Salon
	if err := ctl.db.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	if input.Name != nil {
		salon.Name = *input.Name
	}
	if input.Address != nil {
		salon.Address = *input.Address
	}
	if input.Phone != nil {
		salon.Phone = *input.Phone
	}
	if input.Email != nil {
		salon.Email = *input.Email
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown timezone")
			return
		}
		salon.Timezone = *input.Timezone
	}
	if input.CancellationPolicy != nil {
		salon.CancellationPolicy = *input.CancellationPolicy
	}

	if err := ctl.db.Save(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdateBusinessHours replaces the per-day hours map. Each present day must
// carry a valid start < end clock pair.
func (ctl *ProfileController) UpdateBusinessHours(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input struct {
		BusinessHours models.JSONB `json:"businessHours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	for day, raw := range input.BusinessHours {
		hours, ok := raw.(map[string]interface{})
		if !ok {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid hours for day "+day)
			return
		}
		start, _ := hours["start"].(string)
		end, _ := hours["end"].(string)
		if !utils.ValidateClockRange(start, end) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid hours for day "+day)
			return
		}
	}

	if err := ctl.db.Model(&models.Salon{}).Where("id = ?", salonUUID).
		Update("business_hours", input.BusinessHours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update business hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Business hours updated"})
}

func (ctl *ProfileController) UpdateSettings(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input struct {
		Settings               models.JSONB `json:"settings"`
		SlotGranularityMinutes *int         `json:"slotGranularityMinutes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	updates := map[string]interface{}{}
	if input.Settings != nil {
		updates["settings"] = input.Settings
	}
	if input.SlotGranularityMinutes != nil {
		if *input.SlotGranularityMinutes <= 0 || *input.SlotGranularityMinutes > 240 {
			utils.RespondWithError(c, http.StatusBadRequest, "Slot granularity must be between 1 and 240 minutes")
			return
		}
		updates["slot_granularity_minutes"] = *input.SlotGranularityMinutes
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	if err := ctl.db.Model(&models.Salon{}).Where("id = ?", salonUUID).
		Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}
