// utils/timeutil.go
package utils

import (
	"fmt"
	"sort"
	"time"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries do not overlap: an
// appointment ending at 10:00 does not conflict with one starting at 10:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// DayOfWeekIn returns 0 (Sunday) .. 6 (Saturday) for the instant as seen in
// the given time zone.
func DayOfWeekIn(t time.Time, loc *time.Location) int {
	return int(t.In(loc).Weekday())
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// AtClock returns the instant on date's calendar day (in loc) at the given
// "HH:mm" wall-clock time. DST shifts are resolved by the time package, not
// by offset math.
func AtClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the interval has positive length. Zero-length or
// inverted intervals are treated as empty everywhere, never as an error.
func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

func (iv Interval) Overlaps(other Interval) bool {
	return Overlaps(iv.Start, iv.End, other.Start, other.End)
}

// Contains reports whether other lies entirely within iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// MergeIntervals unions overlapping or touching intervals into a sorted
// disjoint set. Invalid intervals are dropped.
func MergeIntervals(intervals []Interval) []Interval {
	valid := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Valid() {
			valid = append(valid, iv)
		}
	}
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	var merged []Interval
	for _, iv := range valid {
		if n := len(merged); n > 0 && !iv.Start.After(merged[n-1].End) {
			if iv.End.After(merged[n-1].End) {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// SubtractInterval removes sub from every interval in open, splitting
// intervals that fully contain it. Order is preserved.
func SubtractInterval(open []Interval, sub Interval) []Interval {
	if !sub.Valid() {
		return open
	}
	out := make([]Interval, 0, len(open)+1)
	for _, iv := range open {
		if !iv.Overlaps(sub) {
			out = append(out, iv)
			continue
		}
		if iv.Start.Before(sub.Start) {
			out = append(out, Interval{Start: iv.Start, End: sub.Start})
		}
		if sub.End.Before(iv.End) {
			out = append(out, Interval{Start: sub.End, End: iv.End})
		}
	}
	return out
}
