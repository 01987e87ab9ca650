package get_available_slots

import (
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/pkg/types"
)

// generateCandidates enumerates slot starts inside the day window at the
// given granularity. A candidate survives only if the whole service
// interval [start, start+duration) fits before closing and does not touch
// the mid-day break.
func generateCandidates(window domain.DayWindow, durationMinutes, granularityMinutes int) ([]types.TimeString, error) {
	candidates := make([]types.TimeString, 0)
	current := window.Open

	for current.IsBefore(window.Close) {
		end, err := current.AddMinutes(durationMinutes)
		if err != nil {
			break
		}
		if end.IsAfter(window.Close) {
			break
		}

		if !overlapsBreak(window, current, end) {
			candidates = append(candidates, current)
		}

		next, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return candidates, nil
}

// overlapsBreak applies the half-open overlap predicate against the break
// window. Slots ending exactly at break start (or starting at break end)
// are allowed.
func overlapsBreak(window domain.DayWindow, start, end types.TimeString) bool {
	if !window.HasBreak() {
		return false
	}
	return start.IsBefore(*window.BreakEnd) && end.IsAfter(*window.BreakStart)
}

// leadTimeCutoff computes the earliest acceptable slot start for same-day
// requests: now plus the lead time, rounded up to a half-hour boundary.
// Minute over 30 rounds to the next full hour, minute in (0, 30] rounds to
// half past, a full hour stands as is. The second return reports whether
// the cutoff still falls on now's calendar day; once it rolls past
// midnight no slot of the day can satisfy the lead time, and the
// wall-clock cutoff must not be compared against earlier times.
func leadTimeCutoff(now time.Time, leadTimeMinutes int) (types.TimeString, bool) {
	earliest := now.Add(time.Duration(leadTimeMinutes) * time.Minute)

	minute := earliest.Minute()
	rounded := time.Date(earliest.Year(), earliest.Month(), earliest.Day(),
		earliest.Hour(), 0, 0, 0, earliest.Location())
	switch {
	case minute > 30:
		rounded = rounded.Add(time.Hour)
	case minute > 0:
		rounded = rounded.Add(30 * time.Minute)
	}

	if rounded.Year() != now.Year() || rounded.YearDay() != now.YearDay() {
		return types.TimeString(""), false
	}
	return types.NewTimeString(rounded), true
}

// filterByLeadTime drops candidates starting before the cutoff.
func filterByLeadTime(candidates []types.TimeString, cutoff types.TimeString) []types.TimeString {
	filtered := make([]types.TimeString, 0, len(candidates))
	for _, c := range candidates {
		if !c.IsBefore(cutoff) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// filterByConflicts drops candidates whose service interval overlaps any
// active booking. Back-to-back intervals never conflict.
func filterByConflicts(
	candidates []types.TimeString,
	durationMinutes int,
	date time.Time,
	loc *time.Location,
	bookings []*domain.Booking,
) ([]Slot, error) {
	slots := make([]Slot, 0, len(candidates))

	for _, c := range candidates {
		start, err := c.At(date, loc)
		if err != nil {
			return nil, err
		}
		end := start.Add(time.Duration(durationMinutes) * time.Minute)

		if hasConflict(bookings, start, end) {
			continue
		}

		slots = append(slots, Slot{Time: c, StartAt: start})
	}

	return slots, nil
}

func hasConflict(bookings []*domain.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
