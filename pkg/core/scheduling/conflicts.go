package scheduling

import (
	"time"

	"github.com/altamoda/agencyboard/pkg/core/model"
)

// Candidate is a date/time range being checked against a model's calendar
type Candidate struct {
	Start time.Time // Calendar date, midnight
	End   time.Time // Calendar date, midnight; equals Start for single-day ranges

	// Minutes since midnight; valid only when HasTimes is true
	StartMinutes int
	EndMinutes   int
	HasTimes     bool

	// ExcludeEventID omits the named event, so editing an event does not
	// report a conflict with itself
	ExcludeEventID string
}

// NewCandidate builds a Candidate from raw request values. endDate may be
// empty (single-day range); startTime and endTime must either both be set or
// both be empty. Malformed values produce an InvalidInputError.
func NewCandidate(startDate, endDate, startTime, endTime, excludeEventID string) (Candidate, error) {
	start, err := ParseDate("startDate", startDate)
	if err != nil {
		return Candidate{}, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate("endDate", endDate)
		if err != nil {
			return Candidate{}, err
		}
	}
	if end.Before(start) {
		return Candidate{}, &InvalidInputError{Field: "endDate", Value: endDate, Reason: "before startDate"}
	}

	c := Candidate{Start: start, End: end, ExcludeEventID: excludeEventID}

	if startTime == "" && endTime == "" {
		return c, nil
	}
	if startTime == "" || endTime == "" {
		return Candidate{}, &InvalidInputError{Field: "endTime", Value: endTime, Reason: "startTime and endTime must be given together"}
	}

	c.StartMinutes, err = ParseClock("startTime", startTime)
	if err != nil {
		return Candidate{}, err
	}
	c.EndMinutes, err = ParseClock("endTime", endTime)
	if err != nil {
		return Candidate{}, err
	}
	c.HasTimes = true

	return c, nil
}

// FindConflicts returns every event whose date range overlaps the candidate,
// refined by time-of-day where both sides carry full clock bounds. Input
// order is preserved.
//
// Date ranges are treated as closed intervals: an event ending exactly on the
// candidate's start date still conflicts. Time-of-day ranges are half-open:
// a 09:00-10:00 event does not conflict with a 10:00-11:00 candidate. The
// asymmetry is a compatibility requirement, not an oversight.
func FindConflicts(c Candidate, events []model.CalendarEvent) []model.CalendarEvent {
	conflicts := []model.CalendarEvent{}

	for _, ev := range events {
		if c.ExcludeEventID != "" && ev.ID == c.ExcludeEventID {
			continue
		}
		if conflictsWith(c, ev) {
			conflicts = append(conflicts, ev)
		}
	}

	return conflicts
}

// conflictsWith applies the date-range test and, where applicable, the
// time-of-day refinement to a single event
func conflictsWith(c Candidate, ev model.CalendarEvent) bool {
	evStart, err := ParseDate("event.startDate", ev.StartDate)
	if err != nil {
		// Unreadable stored dates cannot overlap anything
		return false
	}
	evEnd := evStart
	if ev.EndDate != "" {
		if parsed, err := ParseDate("event.endDate", ev.EndDate); err == nil {
			evEnd = parsed
		}
	}

	// Closed-interval date overlap: touching boundaries count
	if c.Start.After(evEnd) || c.End.Before(evStart) {
		return false
	}

	// Time-of-day refinement only applies when both sides carry full clock
	// bounds and the candidate is a single day matching the event's start day
	if !c.HasTimes || !ev.HasTimeOfDay() {
		return true
	}
	if !c.Start.Equal(c.End) || !c.Start.Equal(evStart) {
		return true
	}

	evStartMin, ok := clockMinutes(ev.StartTime)
	if !ok {
		return true
	}
	evEndMin, ok := clockMinutes(ev.EndTime)
	if !ok {
		return true
	}

	// Half-open minute-of-day overlap: exact touching is not a conflict
	return c.StartMinutes < evEndMin && c.EndMinutes > evStartMin
}
