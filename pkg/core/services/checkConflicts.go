package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/scheduling"
)

// CheckConflictsInput carries the raw request values for a conflict check
type CheckConflictsInput struct {
	ModelID        string
	StartDate      string
	EndDate        string // Optional; empty means single-day range
	StartTime      string // Optional "HH:MM"; must be paired with EndTime
	EndTime        string
	ExcludeEventID string // Optional; set when editing an existing event
}

// ConflictCheckStore defines the database operations needed to check conflicts
type ConflictCheckStore interface {
	GetEventsForModel(ctx context.Context, modelID string) ([]model.CalendarEvent, error)
}

// CheckConflicts validates the input, loads the model's calendar, and returns
// every existing event that overlaps the candidate range. A model with no
// events yields an empty result, not an error.
func CheckConflicts(ctx context.Context, store ConflictCheckStore, logger *zap.Logger, input CheckConflictsInput) ([]model.CalendarEvent, error) {
	if input.ModelID == "" {
		return nil, &scheduling.InvalidInputError{Field: "modelId", Value: "", Reason: "required"}
	}

	candidate, err := scheduling.NewCandidate(input.StartDate, input.EndDate, input.StartTime, input.EndTime, input.ExcludeEventID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Checking conflicts",
		zap.String("model_id", input.ModelID),
		zap.String("start_date", input.StartDate),
		zap.String("end_date", input.EndDate),
		zap.Bool("has_times", candidate.HasTimes))

	events, err := store.GetEventsForModel(ctx, input.ModelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events for model: %w", err)
	}

	expanded, err := expandRecurrences(events, candidate.Start, candidate.End)
	if err != nil {
		return nil, err
	}

	conflicts := scheduling.FindConflicts(candidate, expanded)

	logger.Info("Conflict check completed",
		zap.String("model_id", input.ModelID),
		zap.Int("events_checked", len(expanded)),
		zap.Int("conflicts", len(conflicts)))

	return conflicts, nil
}

// expandRecurrences replaces each recurring event with its concrete
// occurrences near the candidate window. Non-recurring events pass through
// untouched, in order.
func expandRecurrences(events []model.CalendarEvent, windowStart, windowEnd time.Time) ([]model.CalendarEvent, error) {
	expanded := make([]model.CalendarEvent, 0, len(events))

	for _, ev := range events {
		if ev.Recurrence == "" {
			expanded = append(expanded, ev)
			continue
		}

		occurrences, err := occurrencesFor(ev, windowStart, windowEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to expand recurrence for event %s: %w", ev.ID, err)
		}
		expanded = append(expanded, occurrences...)
	}

	return expanded, nil
}

func occurrencesFor(ev model.CalendarEvent, windowStart, windowEnd time.Time) ([]model.CalendarEvent, error) {
	start, err := scheduling.ParseDate("event.startDate", ev.StartDate)
	if err != nil {
		return nil, err
	}
	end := start
	if ev.EndDate != "" {
		if end, err = scheduling.ParseDate("event.endDate", ev.EndDate); err != nil {
			return nil, err
		}
	}
	spanDays := int(end.Sub(start).Hours() / 24)

	rule, err := rrule.StrToRRule(ev.Recurrence)
	if err != nil {
		return nil, err
	}
	rule.DTStart(start)

	// Occurrences starting up to spanDays before the window can still reach
	// into it
	from := windowStart.AddDate(0, 0, -spanDays)
	occurrences := []model.CalendarEvent{}
	for _, occ := range rule.Between(from, windowEnd, true) {
		instance := ev
		instance.StartDate = occ.Format(scheduling.DateLayout)
		if spanDays > 0 {
			instance.EndDate = occ.AddDate(0, 0, spanDays).Format(scheduling.DateLayout)
		} else {
			instance.EndDate = ""
		}
		occurrences = append(occurrences, instance)
	}

	return occurrences, nil
}
