package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"glowdesk-backend/models"

	"go.uber.org/zap"
)

// CalendarSyncService pushes appointment state to an external calendar/CRM
// over its REST API. Every call is a single attempt keyed by appointment id;
// callers decide whether to await it (hard delete) or fire-and-forget
// (create, update, cancel).
type CalendarSyncService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewCalendarSyncService reads CALENDAR_SYNC_URL and CALENDAR_SYNC_API_KEY.
// With no URL configured every sync call is a no-op.
func NewCalendarSyncService(logger *zap.Logger) *CalendarSyncService {
	return &CalendarSyncService{
		baseURL: strings.TrimRight(os.Getenv("CALENDAR_SYNC_URL"), "/"),
		apiKey:  os.Getenv("CALENDAR_SYNC_API_KEY"),
		client:  &http.Client{Timeout: syncTimeout},
		logger:  logger,
	}
}

func (s *CalendarSyncService) Enabled() bool {
	return s.baseURL != ""
}

type syncPayload struct {
	AppointmentID  string    `json:"appointmentId"`
	SalonID        string    `json:"salonId"`
	ProfessionalID string    `json:"professionalId"`
	CustomerID     string    `json:"customerId"`
	ServiceID      string    `json:"serviceId"`
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
	Status         string    `json:"status"`
}

func (s *CalendarSyncService) SyncCreate(ctx context.Context, appt *models.Appointment) error {
	return s.send(ctx, "create", http.MethodPost, "/appointments", appt, true)
}

func (s *CalendarSyncService) SyncUpdate(ctx context.Context, appt *models.Appointment) error {
	return s.send(ctx, "update", http.MethodPut, "/appointments/"+appt.ID.String(), appt, true)
}

func (s *CalendarSyncService) SyncDelete(ctx context.Context, appt *models.Appointment) error {
	return s.send(ctx, "delete", http.MethodDelete, "/appointments/"+appt.ID.String(), appt, false)
}

func (s *CalendarSyncService) send(ctx context.Context, op, method, path string, appt *models.Appointment, includeBody bool) error {
	if !s.Enabled() {
		return nil
	}

	var body *bytes.Reader
	if includeBody {
		payload := syncPayload{
			AppointmentID:  appt.ID.String(),
			SalonID:        appt.SalonID.String(),
			ProfessionalID: appt.ProfessionalID.String(),
			CustomerID:     appt.CustomerID.String(),
			ServiceID:      appt.ServiceID.String(),
			StartsAt:       appt.StartsAt,
			EndsAt:         appt.EndsAt,
			Status:         appt.Status,
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return &SyncError{Op: op, AppointmentID: appt.ID, Err: err}
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return &SyncError{Op: op, AppointmentID: appt.ID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &SyncError{Op: op, AppointmentID: appt.ID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &SyncError{Op: op, AppointmentID: appt.ID, Err: fmt.Errorf("calendar API returned %s", resp.Status)}
	}

	s.logger.Debug("external sync ok",
		zap.String("op", op),
		zap.String("path", path))
	return nil
}
