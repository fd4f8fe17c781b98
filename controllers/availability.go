package controllers

import (
	"errors"
	"net/http"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/services"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityController struct {
	db  *gorm.DB
	svc *services.AvailabilityService
}

func NewAvailabilityController(db *gorm.DB, svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{db: db, svc: svc}
}

// GetSlots answers GET /api/availability?professionalId=&serviceId=&date=
// with the ordered bookable slots for that day. Slots are recomputed fresh on
// every call.
func (ctl *AvailabilityController) GetSlots(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	professionalUUID, err := uuid.Parse(c.Query("professionalId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professionalId format")
		return
	}
	serviceUUID, err := uuid.Parse(c.Query("serviceId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid serviceId format")
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
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

	slots, err := ctl.svc.ComputeSlots(c.Request.Context(), salonUUID, professionalUUID, date, service.Duration)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            c.Query("date"),
		"professionalId":  professionalUUID,
		"serviceDuration": service.Duration,
		"slots":           slots,
	})
}
