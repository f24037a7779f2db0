package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altamoda/agencyboard/pkg/core/model"
)

func event(id, startDate, endDate, startTime, endTime string) model.CalendarEvent {
	return model.CalendarEvent{
		ID:        id,
		ModelID:   "model-1",
		EventType: model.EventJob,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
	}
}

func mustCandidate(t *testing.T, startDate, endDate, startTime, endTime string) Candidate {
	t.Helper()
	c, err := NewCandidate(startDate, endDate, startTime, endTime, "")
	require.NoError(t, err)
	return c
}

func TestNewCandidate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		startTime string
		endTime   string
		field     string
	}{
		{"bad start date", "2025-13-40", "", "", "", "startDate"},
		{"bad end date", "2025-06-01", "junk", "", "", "endDate"},
		{"end before start", "2025-06-10", "2025-06-01", "", "", "endDate"},
		{"start time alone", "2025-06-01", "", "09:00", "", "endTime"},
		{"end time alone", "2025-06-01", "", "", "17:00", "endTime"},
		{"bad start time", "2025-06-01", "", "9am", "17:00", "startTime"},
		{"bad end time", "2025-06-01", "", "09:00", "25:99", "endTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCandidate(tt.startDate, tt.endDate, tt.startTime, tt.endTime, "")
			require.Error(t, err)

			var invalid *InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestNewCandidate_Defaults(t *testing.T) {
	c := mustCandidate(t, "2025-06-01", "", "", "")
	assert.Equal(t, c.Start, c.End)
	assert.False(t, c.HasTimes)

	c = mustCandidate(t, "2025-06-01", "2025-06-03", "09:30", "17:45")
	assert.True(t, c.HasTimes)
	assert.Equal(t, 9*60+30, c.StartMinutes)
	assert.Equal(t, 17*60+45, c.EndMinutes)
}

func TestFindConflicts_DateRanges(t *testing.T) {
	events := []model.CalendarEvent{
		event("before", "2025-06-01", "2025-06-03", "", ""),
		event("touching", "2025-06-03", "2025-06-05", "", ""),
		event("inside", "2025-06-06", "2025-06-07", "", ""),
		event("after", "2025-06-11", "", "", ""),
	}

	// June 5-10 overlaps the touching and inside events. A shared boundary
	// date counts as a conflict.
	c := mustCandidate(t, "2025-06-05", "2025-06-10", "", "")
	conflicts := FindConflicts(c, events)

	require.Len(t, conflicts, 2)
	assert.Equal(t, "touching", conflicts[0].ID)
	assert.Equal(t, "inside", conflicts[1].ID)
}

func TestFindConflicts_DisjointRanges(t *testing.T) {
	events := []model.CalendarEvent{
		event("e1", "2025-06-01", "2025-06-03", "", ""),
	}

	c := mustCandidate(t, "2025-06-04", "2025-06-08", "", "")
	assert.Empty(t, FindConflicts(c, events))
}

func TestFindConflicts_SameDayWithoutTimes(t *testing.T) {
	events := []model.CalendarEvent{
		event("timed", "2025-06-05", "", "09:00", "10:00"),
	}

	// Candidate with no time range conflicts on the date alone
	c := mustCandidate(t, "2025-06-05", "", "", "")
	assert.Len(t, FindConflicts(c, events), 1)
}

func TestFindConflicts_TimeRefinement(t *testing.T) {
	events := []model.CalendarEvent{
		event("morning", "2025-06-05", "", "09:00", "10:00"),
	}

	tests := []struct {
		name      string
		startTime string
		endTime   string
		conflict  bool
	}{
		{"back to back is free", "10:00", "11:00", false},
		{"one minute overlap", "09:59", "11:00", true},
		{"overlap past boundary", "09:00", "10:01", true},
		{"contained", "09:15", "09:45", true},
		{"earlier and touching", "08:00", "09:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCandidate(t, "2025-06-05", "", tt.startTime, tt.endTime)
			conflicts := FindConflicts(c, events)
			if tt.conflict {
				assert.Len(t, conflicts, 1)
			} else {
				assert.Empty(t, conflicts)
			}
		})
	}
}

func TestFindConflicts_RefinementNeedsSingleDayMatch(t *testing.T) {
	events := []model.CalendarEvent{
		event("morning", "2025-06-05", "", "09:00", "10:00"),
	}

	// A multi-day candidate keeps the date-level verdict even with times
	c, err := NewCandidate("2025-06-05", "2025-06-06", "10:00", "11:00", "")
	require.NoError(t, err)
	assert.Len(t, FindConflicts(c, events), 1)

	// Same for a single-day candidate on a later day of a multi-day event
	events = []model.CalendarEvent{
		event("shoot", "2025-06-04", "2025-06-06", "09:00", "10:00"),
	}
	c = mustCandidate(t, "2025-06-05", "", "10:00", "11:00")
	assert.Len(t, FindConflicts(c, events), 1)
}

func TestFindConflicts_ExcludesNamedEvent(t *testing.T) {
	events := []model.CalendarEvent{
		event("editing", "2025-06-05", "", "", ""),
		event("other", "2025-06-05", "", "", ""),
	}

	c, err := NewCandidate("2025-06-05", "", "", "", "editing")
	require.NoError(t, err)

	conflicts := FindConflicts(c, events)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "other", conflicts[0].ID)
}

func TestFindConflicts_UnreadableStoredValues(t *testing.T) {
	events := []model.CalendarEvent{
		event("bad-date", "not-a-date", "", "", ""),
		event("bad-times", "2025-06-05", "", "morning", "noon"),
	}

	c := mustCandidate(t, "2025-06-05", "", "10:00", "11:00")
	conflicts := FindConflicts(c, events)

	// An unreadable date cannot overlap; unreadable times fall back to the
	// date-level verdict
	require.Len(t, conflicts, 1)
	assert.Equal(t, "bad-times", conflicts[0].ID)
}

func TestFindConflicts_BookingScenario(t *testing.T) {
	events := []model.CalendarEvent{
		event("E1", "2025-06-05", "", "10:00", "12:00"),
	}

	c := mustCandidate(t, "2025-06-05", "", "11:00", "13:00")
	conflicts := FindConflicts(c, events)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "E1", conflicts[0].ID)

	c = mustCandidate(t, "2025-06-05", "", "12:00", "13:00")
	assert.Empty(t, FindConflicts(c, events))
}
