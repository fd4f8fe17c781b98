package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"glowdesk-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type appointmentFixture struct {
	salon        models.Salon
	professional models.Professional
	service      models.Service
	customer     models.Customer
	appointments *mockAppointmentStore
	recorder     *callRecorder
	sync         *mockSync
	svc          *AppointmentService
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	salon := models.Salon{
		ID:                     uuid.New(),
		Name:                   "Test Salon",
		Timezone:               "UTC",
		SlotGranularityMinutes: 30,
		IsActive:               true,
	}
	professional := models.Professional{
		ID:          uuid.New(),
		SalonID:     salon.ID,
		Name:        "Dana",
		Role:        models.RoleStaff,
		WorkingDays: 127,
		IsActive:    true,
	}
	service := models.Service{
		ID:       uuid.New(),
		SalonID:  salon.ID,
		Name:     "Haircut",
		Duration: 30,
	}
	customer := models.Customer{
		ID:      uuid.New(),
		SalonID: salon.ID,
		Name:    "Riley",
		Phone:   "+15551230001",
	}

	recorder := &callRecorder{}
	rules := &mockRuleStore{}
	for day := 0; day < 7; day++ {
		rules.rules = append(rules.rules, models.AvailabilityRule{
			ID:             uuid.New(),
			SalonID:        salon.ID,
			ProfessionalID: professional.ID,
			DayOfWeek:      day,
			StartTime:      "09:00",
			EndTime:        "18:00",
		})
	}

	catalog := &mockCatalogStore{
		salons:        map[uuid.UUID]models.Salon{salon.ID: salon},
		professionals: map[uuid.UUID]models.Professional{professional.ID: professional},
		services:      map[uuid.UUID]models.Service{service.ID: service},
		customers:     map[uuid.UUID]models.Customer{customer.ID: customer},
	}
	appointments := &mockAppointmentStore{recorder: recorder}
	availability := NewAvailabilityService(rules, &mockOverrideStore{}, appointments, catalog, zap.NewNop())
	external := &mockSync{recorder: recorder}

	return &appointmentFixture{
		salon:        salon,
		professional: professional,
		service:      service,
		customer:     customer,
		appointments: appointments,
		recorder:     recorder,
		sync:         external,
		svc:          NewAppointmentService(appointments, catalog, availability, external, zap.NewNop()),
	}
}

func (f *appointmentFixture) createInput(startsAt time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		CustomerID:     f.customer.ID,
		ProfessionalID: f.professional.ID,
		ServiceID:      f.service.ID,
		StartsAt:       startsAt,
	}
}

func (f *appointmentFixture) syncCalls(call string) func() bool {
	return func() bool {
		for _, c := range f.recorder.snapshot() {
			if c == call {
				return true
			}
		}
		return false
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentScheduled, appt.Status)
	assert.Equal(t, mondayAt(10, 0), appt.StartsAt)
	assert.Equal(t, mondayAt(10, 30), appt.EndsAt)
	assert.NotEqual(t, uuid.Nil, appt.ID)
	assert.Equal(t, 1, f.appointments.count())

	require.Eventually(t, f.syncCalls("sync-create"), time.Second, 10*time.Millisecond)
}

func TestCreateAppointment_Conflict(t *testing.T) {
	f := newAppointmentFixture(t)

	first, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, first.ID, conflictErr.Conflicts[0].ID)
	assert.Equal(t, 1, f.appointments.count())
}

func TestCreateAppointment_TouchingBoundariesAllowed(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)

	// Ends exactly where the first begins.
	_, err = f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(9, 30)))
	require.NoError(t, err)

	// Begins exactly where the first ends.
	_, err = f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 30)))
	require.NoError(t, err)

	assert.Equal(t, 3, f.appointments.count())
}

func TestCreateAppointment_OutsideWorkingHours(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(8, 0)))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, f.appointments.count())
}

func TestCreateAppointment_UnknownReferences(t *testing.T) {
	f := newAppointmentFixture(t)

	in := f.createInput(mondayAt(10, 0))
	in.CustomerID = uuid.New()
	_, err := f.svc.Create(context.Background(), f.salon.ID, in)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "customer", notFound.Resource)

	in = f.createInput(mondayAt(10, 0))
	in.ServiceID = uuid.New()
	_, err = f.svc.Create(context.Background(), f.salon.ID, in)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "service", notFound.Resource)
}

func TestCreateAppointment_SyncFailureDoesNotFailBooking(t *testing.T) {
	f := newAppointmentFixture(t)
	f.sync.err = errors.New("calendar unreachable")

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentScheduled, appt.Status)
	assert.Equal(t, 1, f.appointments.count())

	require.Eventually(t, f.syncCalls("sync-create"), time.Second, 10*time.Millisecond)
}

func TestConcurrentCreate_SameInterval(t *testing.T) {
	f := newAppointmentFixture(t)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		var conflictErr *ConflictError
		require.ErrorAs(t, err, &conflictErr)
		conflicts++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, f.appointments.count())
}

func TestUpdateAppointment_ExcludesItself(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)

	// Shifting within the old interval must not collide with itself.
	newStart := mondayAt(10, 15)
	updated, err := f.svc.Update(context.Background(), f.salon.ID, appt.ID, UpdateAppointmentInput{
		StartsAt: &newStart,
	})
	require.NoError(t, err)
	assert.Equal(t, mondayAt(10, 15), updated.StartsAt)
	assert.Equal(t, mondayAt(10, 45), updated.EndsAt)

	require.Eventually(t, f.syncCalls("sync-update"), time.Second, 10*time.Millisecond)
}

func TestUpdateAppointment_ConflictWithOther(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)
	second, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(11, 0)))
	require.NoError(t, err)

	newStart := mondayAt(10, 15)
	_, err = f.svc.Update(context.Background(), f.salon.ID, second.ID, UpdateAppointmentInput{
		StartsAt: &newStart,
	})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	// The stored appointment is untouched.
	stored, err := f.appointments.GetByID(context.Background(), f.salon.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, mondayAt(11, 0), stored.StartsAt)
}

func TestUpdateAppointment_CancelledRejected(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), f.salon.ID, appt.ID)
	require.NoError(t, err)

	newStart := mondayAt(11, 0)
	_, err = f.svc.Update(context.Background(), f.salon.ID, appt.ID, UpdateAppointmentInput{
		StartsAt: &newStart,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCancelAppointment_FreesSlot(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), f.salon.ID, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)

	// The same interval can be rebooked.
	_, err = f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)

	require.Eventually(t, f.syncCalls("sync-delete"), time.Second, 10*time.Millisecond)
}

func TestCancelAppointment_Idempotent(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), f.salon.ID, appt.ID)
	require.NoError(t, err)
	again, err := f.svc.Cancel(context.Background(), f.salon.ID, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, again.Status)
}

func TestCompleteAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)

	done, err := f.svc.Complete(context.Background(), f.salon.ID, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, done.Status)
}

func TestDeleteAppointment_SyncsBeforeRemoval(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)
	require.Eventually(t, f.syncCalls("sync-create"), time.Second, 10*time.Millisecond)

	err = f.svc.Delete(context.Background(), f.salon.ID, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.appointments.count())

	assert.Equal(t, []string{"sync-create", "sync-delete", "store-delete"}, f.recorder.snapshot())
}

func TestDeleteAppointment_ProceedsOnSyncFailure(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)
	require.Eventually(t, f.syncCalls("sync-create"), time.Second, 10*time.Millisecond)

	f.sync.err = errors.New("calendar unreachable")
	err = f.svc.Delete(context.Background(), f.salon.ID, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.appointments.count())
}

func TestDeleteAppointment_NotFound(t *testing.T) {
	f := newAppointmentFixture(t)

	err := f.svc.Delete(context.Background(), f.salon.ID, uuid.New())
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "appointment", notFound.Resource)
}

func TestFindConflicts_HalfOpenSemantics(t *testing.T) {
	f := newAppointmentFixture(t)

	appt, err := f.svc.Create(context.Background(), f.salon.ID, f.createInput(mondayAt(10, 0)))
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"identical", mondayAt(10, 0), mondayAt(10, 30), 1},
		{"partial overlap", mondayAt(10, 15), mondayAt(10, 45), 1},
		{"contains", mondayAt(9, 0), mondayAt(12, 0), 1},
		{"touches end", mondayAt(10, 30), mondayAt(11, 0), 0},
		{"touches start", mondayAt(9, 30), mondayAt(10, 0), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.svc.FindConflicts(context.Background(), f.professional.ID, tc.start, tc.end, nil)
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
		})
	}

	excludeID := appt.ID
	got, err := f.svc.FindConflicts(context.Background(), f.professional.ID, mondayAt(10, 0), mondayAt(10, 30), &excludeID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
