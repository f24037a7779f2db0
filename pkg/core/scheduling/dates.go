package scheduling

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used across the event store
const DateLayout = "2006-01-02"

// InvalidInputError reports a malformed date or time value supplied by a
// caller. It is raised before any conflict or alert computation runs.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ParseDate parses a calendar date string, returning an InvalidInputError
// for anything that is not a valid "2006-01-02" date
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &InvalidInputError{Field: field, Value: value, Reason: "expected YYYY-MM-DD"}
	}
	return t, nil
}

// ParseClock converts a wall-clock "HH:MM" string to minutes since midnight
func ParseClock(field, value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, &InvalidInputError{Field: field, Value: value, Reason: "expected HH:MM"}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// clockMinutes is ParseClock without the error path, for stored events whose
// time fields may predate validation. ok is false when the value is unusable.
func clockMinutes(value string) (int, bool) {
	m, err := ParseClock("time", value)
	if err != nil {
		return 0, false
	}
	return m, true
}

// StartOfDay truncates a timestamp to local midnight
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
