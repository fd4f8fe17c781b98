// services/reminder_service.go
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderService sends next-day appointment reminders over SMS/WhatsApp and
// records every attempt. One reminder per appointment; a failed send is
// logged, not retried.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	logger *zap.Logger
}

func NewReminderService(db *gorm.DB, logger *zap.Logger) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		logger: logger,
	}
}

// StartScheduler runs the daily reminder pass at 9 AM.
func (s *ReminderService) StartScheduler() *cron.Cron {
	c := cron.New()
	c.AddFunc("0 9 * * *", s.SendDailyReminders)
	c.Start()
	s.logger.Info("reminder scheduler started")
	return c
}

func (s *ReminderService) SendDailyReminders() {
	s.logger.Info("starting daily reminder processing")

	var salons []models.Salon
	if err := s.db.Find(&salons, "is_active = ?", true).Error; err != nil {
		s.logger.Error("failed to fetch salons", zap.Error(err))
		return
	}

	for _, salon := range salons {
		s.ProcessSalonReminders(&salon)
	}

	s.logger.Info("daily reminder processing completed")
}

// ProcessSalonReminders picks the salon's appointments starting tomorrow
// (salon-local) that have not been reminded yet and sends each one.
func (s *ReminderService) ProcessSalonReminders(salon *models.Salon) {
	loc := salon.Location()
	tomorrow := utils.BeginningOfDay(time.Now().In(loc)).AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := s.db.
		Where("salon_id = ? AND status = ? AND starts_at >= ? AND starts_at < ?",
			salon.ID, models.AppointmentScheduled, tomorrow, dayAfter).
		Order("starts_at ASC").
		Find(&appointments).Error
	if err != nil {
		s.logger.Error("failed to fetch appointments for reminders",
			zap.String("salon_id", salon.ID.String()), zap.Error(err))
		return
	}

	for _, appt := range appointments {
		var count int64
		s.db.Model(&models.ReminderLog{}).
			Where("appointment_id = ? AND status = ?", appt.ID, "sent").
			Count(&count)
		if count > 0 {
			continue
		}
		s.sendReminder(salon, &appt)
	}
}

func (s *ReminderService) sendReminder(salon *models.Salon, appt *models.Appointment) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", appt.CustomerID).Error; err != nil {
		s.logger.Warn("reminder skipped, customer missing",
			zap.String("appointment_id", appt.ID.String()), zap.Error(err))
		return
	}

	message := fmt.Sprintf("Hi %s, a reminder of your appointment at %s tomorrow at %s.",
		customer.Name, salon.Name, appt.StartsAt.In(salon.Location()).Format("15:04"))
	if custom, ok := salon.Settings["reminderMessage"].(string); ok && custom != "" {
		message = strings.ReplaceAll(custom, "[CustomerName]", customer.Name)
		message = strings.ReplaceAll(message, "[Time]", appt.StartsAt.In(salon.Location()).Format("15:04"))
	}

	// WhatsApp when the number is E.164, otherwise SMS
	channel := "sms"
	to := customer.Phone
	if strings.HasPrefix(customer.Phone, "+") {
		to = "whatsapp:" + customer.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		s.logger.Warn("failed to send reminder",
			zap.String("phone", customer.Phone), zap.Error(err))
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		s.logger.Info("reminder sent",
			zap.String("phone", customer.Phone), zap.String("sid", *resp.Sid))
	}

	reminderLog := models.ReminderLog{
		SalonID:       salon.ID,
		AppointmentID: appt.ID,
		CustomerID:    customer.ID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}
	if err := s.db.Create(&reminderLog).Error; err != nil {
		s.logger.Error("failed to log reminder",
			zap.String("appointment_id", appt.ID.String()), zap.Error(err))
	}
}
