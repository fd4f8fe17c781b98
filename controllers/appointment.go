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

type AppointmentController struct {
	db  *gorm.DB
	svc *services.AppointmentService
}

func NewAppointmentController(db *gorm.DB, svc *services.AppointmentService) *AppointmentController {
	return &AppointmentController{db: db, svc: svc}
}

type CreateAppointmentRequest struct {
	CustomerID     uuid.UUID `json:"customerId" binding:"required"`
	ProfessionalID uuid.UUID `json:"professionalId" binding:"required"`
	ServiceID      uuid.UUID `json:"serviceId" binding:"required"`
	StartsAt       time.Time `json:"startsAt" binding:"required"`
	Notes          string    `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ProfessionalID *uuid.UUID `json:"professionalId"`
	ServiceID      *uuid.UUID `json:"serviceId"`
	StartsAt       *time.Time `json:"startsAt"`
	Notes          *string    `json:"notes"`
}

func (ctl *AppointmentController) Create(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input CreateAppointmentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := ctl.svc.Create(c.Request.Context(), salonUUID, services.CreateAppointmentInput{
		CustomerID:     input.CustomerID,
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		StartsAt:       input.StartsAt,
		Notes:          input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// List returns the salon's appointments, optionally narrowed by professional
// and day. The day filter covers the salon-local calendar day.
func (ctl *AppointmentController) List(c *gin.Context) {
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
	if day := c.Query("date"); day != "" {
		var salon models.Salon
		if err := ctl.db.First(&salon, "id = ?", salonUUID).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve salon")
			return
		}
		date, err := time.ParseInLocation("2006-01-02", day, salon.Location())
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		q = q.Where("starts_at >= ? AND starts_at < ?", date.UTC(), date.AddDate(0, 0, 1).UTC())
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := q.Order("starts_at ASC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (ctl *AppointmentController) Get(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	apptUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var appt models.Appointment
	if err := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, apptUUID).
		First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appt)
}

func (ctl *AppointmentController) Update(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	apptUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := ctl.svc.Update(c.Request.Context(), salonUUID, apptUUID, services.UpdateAppointmentInput{
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		StartsAt:       input.StartsAt,
		Notes:          input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

func (ctl *AppointmentController) Cancel(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	apptUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appt, err := ctl.svc.Cancel(c.Request.Context(), salonUUID, apptUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

func (ctl *AppointmentController) Complete(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	apptUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appt, err := ctl.svc.Complete(c.Request.Context(), salonUUID, apptUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

func (ctl *AppointmentController) Delete(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	apptUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.svc.Delete(c.Request.Context(), salonUUID, apptUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
