package services

import (
	"context"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TimeSlot is a candidate bookable interval of fixed duration. It is derived
// output only, recomputed fresh per call and never persisted.
type TimeSlot struct {
	Time           time.Time `json:"time"`
	Available      bool      `json:"available"`
	ProfessionalID uuid.UUID `json:"professionalId"`
}

// AvailabilityService computes bookable slots by combining a professional's
// weekly rules, one-off overrides and existing appointments.
type AvailabilityService struct {
	rules        AvailabilityRuleStore
	overrides    ScheduleOverrideStore
	appointments AppointmentStore
	catalog      CatalogStore
	logger       *zap.Logger
}

func NewAvailabilityService(
	rules AvailabilityRuleStore,
	overrides ScheduleOverrideStore,
	appointments AppointmentStore,
	catalog CatalogStore,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		rules:        rules,
		overrides:    overrides,
		appointments: appointments,
		catalog:      catalog,
		logger:       logger,
	}
}

// ComputeSlots returns every slot of serviceDuration minutes the professional
// can still take on the given date, in chronological order. Only the date's
// calendar day is used; it names a day in the salon's zone regardless of the
// zone the caller parsed it in. It emits bookable slots only; already-booked
// time is subtracted, never marked.
func (s *AvailabilityService) ComputeSlots(ctx context.Context, salonID, professionalID uuid.UUID, date time.Time, serviceDuration int) ([]TimeSlot, error) {
	if serviceDuration <= 0 {
		return nil, &ValidationError{Reason: "service duration must be positive"}
	}

	salon, err := s.catalog.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	professional, err := s.catalog.GetProfessional(ctx, salonID, professionalID)
	if err != nil {
		return nil, err
	}

	loc := salon.Location()
	year, month, day := date.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	open, err := s.openIntervals(ctx, salon, professional, dayStart)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return []TimeSlot{}, nil
	}

	booked, err := s.appointments.ListBetween(ctx, professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	for _, appt := range booked {
		open = utils.SubtractInterval(open, utils.Interval{Start: appt.StartsAt, End: appt.EndsAt})
	}

	// Slide a serviceDuration window across each open interval at the
	// salon's granularity. Each interval steps from its own start, so time
	// freed right after a break stays reachable. Partial remainders yield
	// nothing.
	step := salon.Granularity()
	slots := []TimeSlot{}
	for _, iv := range open {
		for cur := iv.Start; !utils.AddMinutes(cur, serviceDuration).After(iv.End); cur = utils.AddMinutes(cur, step) {
			slots = append(slots, TimeSlot{
				Time:           cur,
				Available:      true,
				ProfessionalID: professionalID,
			})
		}
	}
	return slots, nil
}

// CoversInterval reports whether [startsAt, endsAt) falls entirely inside the
// professional's open time for that day: working hours minus breaks and
// overrides. Existing appointments are the conflict detector's concern, not
// this check's.
func (s *AvailabilityService) CoversInterval(ctx context.Context, salon *models.Salon, professional *models.Professional, startsAt, endsAt time.Time) (bool, error) {
	want := utils.Interval{Start: startsAt, End: endsAt}
	if !want.Valid() {
		return false, nil
	}

	dayStart := utils.BeginningOfDay(startsAt.In(salon.Location()))
	open, err := s.openIntervals(ctx, salon, professional, dayStart)
	if err != nil {
		return false, err
	}
	for _, iv := range open {
		if iv.Contains(want) {
			return true, nil
		}
	}
	return false, nil
}

// openIntervals builds the disjoint open windows for one salon-local day:
// union of non-break rules, minus contained breaks, minus overrides.
// Malformed rule windows (start >= end) are skipped, never an error.
func (s *AvailabilityService) openIntervals(ctx context.Context, salon *models.Salon, professional *models.Professional, dayStart time.Time) ([]utils.Interval, error) {
	loc := salon.Location()
	weekday := utils.DayOfWeekIn(dayStart, loc)
	if !professional.IsActive || !professional.WorksOn(weekday) {
		return nil, nil
	}

	rules, err := s.rules.RulesForDay(ctx, professional.ID, weekday)
	if err != nil {
		return nil, err
	}

	var working []utils.Interval
	for _, r := range rules {
		if r.IsBreak {
			continue
		}
		iv, ok := s.ruleInterval(r, dayStart, loc)
		if ok {
			working = append(working, iv)
		}
	}
	if len(working) == 0 {
		// No non-break rule: the professional does not work that day.
		return nil, nil
	}

	// Overlapping working windows union rather than error.
	open := utils.MergeIntervals(working)

	for _, r := range rules {
		if !r.IsBreak {
			continue
		}
		br, ok := s.ruleInterval(r, dayStart, loc)
		if !ok {
			continue
		}
		// A break only takes effect inside a working window.
		for _, w := range utils.MergeIntervals(working) {
			if w.Contains(br) {
				open = utils.SubtractInterval(open, br)
				break
			}
		}
	}

	dayEnd := dayStart.AddDate(0, 0, 1)
	overrides, err := s.overrides.OverlappingOverrides(ctx, salon.ID, professional.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		open = utils.SubtractInterval(open, utils.Interval{Start: o.StartsAt, End: o.EndsAt})
	}
	return open, nil
}

func (s *AvailabilityService) ruleInterval(r models.AvailabilityRule, dayStart time.Time, loc *time.Location) (utils.Interval, bool) {
	start, err := utils.AtClock(dayStart, r.StartTime, loc)
	if err != nil {
		s.logger.Warn("skipping malformed availability rule",
			zap.String("rule_id", r.ID.String()),
			zap.String("start", r.StartTime))
		return utils.Interval{}, false
	}
	end, err := utils.AtClock(dayStart, r.EndTime, loc)
	if err != nil {
		s.logger.Warn("skipping malformed availability rule",
			zap.String("rule_id", r.ID.String()),
			zap.String("end", r.EndTime))
		return utils.Interval{}, false
	}
	iv := utils.Interval{Start: start, End: end}
	if !iv.Valid() {
		// start >= end means no availability from this rule, not an error
		return utils.Interval{}, false
	}
	return iv, true
}
