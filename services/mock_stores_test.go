package services

import (
	"context"
	"sync"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hand-written in-memory stores. They honor the same contracts as the GORM
// repositories, including gorm.ErrRecordNotFound for missing records.

type mockRuleStore struct {
	rules []models.AvailabilityRule
}

func (m *mockRuleStore) RulesForDay(_ context.Context, professionalID uuid.UUID, dayOfWeek int) ([]models.AvailabilityRule, error) {
	var out []models.AvailabilityRule
	for _, r := range m.rules {
		if r.ProfessionalID == professionalID && r.DayOfWeek == dayOfWeek {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockOverrideStore struct {
	overrides []models.ScheduleOverride
}

func (m *mockOverrideStore) OverlappingOverrides(_ context.Context, salonID, professionalID uuid.UUID, from, to time.Time) ([]models.ScheduleOverride, error) {
	var out []models.ScheduleOverride
	for _, o := range m.overrides {
		if o.SalonID == salonID && o.AppliesTo(professionalID) &&
			utils.Overlaps(o.StartsAt, o.EndsAt, from, to) {
			out = append(out, o)
		}
	}
	return out, nil
}

// callRecorder captures the order of side effects across mocks.
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *callRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type mockAppointmentStore struct {
	mu           sync.Mutex
	appointments []models.Appointment
	recorder     *callRecorder
}

func (m *mockAppointmentStore) FindOverlapping(_ context.Context, professionalID uuid.UUID, startsAt, endsAt time.Time, excludeID *uuid.UUID) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Appointment
	for _, a := range m.appointments {
		if a.ProfessionalID != professionalID || !a.OccupiesCalendar() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if utils.Overlaps(a.StartsAt, a.EndsAt, startsAt, endsAt) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAppointmentStore) ListBetween(_ context.Context, professionalID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Appointment
	for _, a := range m.appointments {
		if a.ProfessionalID == professionalID && a.OccupiesCalendar() &&
			utils.Overlaps(a.StartsAt, a.EndsAt, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAppointmentStore) GetByID(_ context.Context, salonID, id uuid.UUID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.appointments {
		if a.SalonID == salonID && a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAppointmentStore) Create(_ context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}
	m.appointments = append(m.appointments, *appt)
	return nil
}

func (m *mockAppointmentStore) Save(_ context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, a := range m.appointments {
		if a.ID == appt.ID {
			m.appointments[i] = *appt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAppointmentStore) Delete(_ context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.recorder != nil {
		m.recorder.record("store-delete")
	}
	for i, a := range m.appointments {
		if a.ID == appt.ID {
			m.appointments = append(m.appointments[:i], m.appointments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAppointmentStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appointments)
}

type mockCatalogStore struct {
	salons        map[uuid.UUID]models.Salon
	professionals map[uuid.UUID]models.Professional
	services      map[uuid.UUID]models.Service
	customers     map[uuid.UUID]models.Customer
}

func (m *mockCatalogStore) GetSalon(_ context.Context, id uuid.UUID) (*models.Salon, error) {
	if s, ok := m.salons[id]; ok {
		return &s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogStore) GetProfessional(_ context.Context, salonID, id uuid.UUID) (*models.Professional, error) {
	if p, ok := m.professionals[id]; ok && p.SalonID == salonID {
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogStore) GetService(_ context.Context, salonID, id uuid.UUID) (*models.Service, error) {
	if s, ok := m.services[id]; ok && s.SalonID == salonID {
		return &s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogStore) GetCustomer(_ context.Context, salonID, id uuid.UUID) (*models.Customer, error) {
	if c, ok := m.customers[id]; ok && c.SalonID == salonID {
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockSync struct {
	recorder *callRecorder
	err      error
}

func (m *mockSync) SyncCreate(_ context.Context, appt *models.Appointment) error {
	m.recorder.record("sync-create")
	return m.err
}

func (m *mockSync) SyncUpdate(_ context.Context, appt *models.Appointment) error {
	m.recorder.record("sync-update")
	return m.err
}

func (m *mockSync) SyncDelete(_ context.Context, appt *models.Appointment) error {
	m.recorder.record("sync-delete")
	return m.err
}
