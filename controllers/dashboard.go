package controllers

import (
	"net/http"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	db *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

type DashboardOverview struct {
	TotalCustomers     int64                `json:"totalCustomers"`
	TotalProfessionals int64                `json:"totalProfessionals"`
	TodayAppointments  []models.Appointment `json:"todayAppointments"`
	TodayBooked        int64                `json:"todayBooked"`
	TodayCancelled     int64                `json:"todayCancelled"`
	UpcomingWeek       int64                `json:"upcomingWeek"`
}

// GetOverview summarizes today's calendar for the salon.
func (ctl *DashboardController) GetOverview(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var salon models.Salon
	if err := ctl.db.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	loc := salon.Location()
	todayStart := utils.BeginningOfDay(time.Now().In(loc))
	todayEnd := todayStart.AddDate(0, 0, 1)
	weekEnd := todayStart.AddDate(0, 0, 7)

	overview := DashboardOverview{}

	ctl.db.Model(&models.Customer{}).
		Where("salon_id = ? AND is_active = true", salonUUID).
		Count(&overview.TotalCustomers)

	ctl.db.Model(&models.Professional{}).
		Where("salon_id = ? AND is_active = true", salonUUID).
		Count(&overview.TotalProfessionals)

	ctl.db.Where("salon_id = ? AND starts_at >= ? AND starts_at < ? AND status = ?",
		salonUUID, todayStart, todayEnd, models.AppointmentScheduled).
		Order("starts_at ASC").
		Find(&overview.TodayAppointments)
	overview.TodayBooked = int64(len(overview.TodayAppointments))

	ctl.db.Model(&models.Appointment{}).
		Where("salon_id = ? AND starts_at >= ? AND starts_at < ? AND status = ?",
			salonUUID, todayStart, todayEnd, models.AppointmentCancelled).
		Count(&overview.TodayCancelled)

	ctl.db.Model(&models.Appointment{}).
		Where("salon_id = ? AND starts_at >= ? AND starts_at < ? AND status = ?",
			salonUUID, todayStart, weekEnd, models.AppointmentScheduled).
		Count(&overview.UpcomingWeek)

	c.JSON(http.StatusOK, overview)
}
