package services

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/scheduling"
)

// ExportCalendar renders a model's events as an iCalendar document. Events
// without time-of-day bounds become all-day entries; recurring events carry
// their RRULE through so subscribing clients expand them natively.
func ExportCalendar(ctx context.Context, store ConflictCheckStore, logger *zap.Logger, modelID string) (string, error) {
	if modelID == "" {
		return "", &scheduling.InvalidInputError{Field: "modelId", Value: "", Reason: "required"}
	}

	events, err := store.GetEventsForModel(ctx, modelID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch events for model: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Agency Board//Calendar//EN")

	for _, ev := range events {
		if err := addCalendarEntry(cal, ev); err != nil {
			logger.Warn("Skipping unexportable event",
				zap.String("event_id", ev.ID),
				zap.Error(err))
		}
	}

	logger.Info("Calendar exported",
		zap.String("model_id", modelID),
		zap.Int("events", len(events)))

	return cal.Serialize(), nil
}

func addCalendarEntry(cal *ics.Calendar, ev model.CalendarEvent) error {
	start, err := scheduling.ParseDate("event.startDate", ev.StartDate)
	if err != nil {
		return err
	}
	end := start
	if ev.EndDate != "" {
		if end, err = scheduling.ParseDate("event.endDate", ev.EndDate); err != nil {
			return err
		}
	}

	var startMin, endMin int
	if ev.HasTimeOfDay() {
		if startMin, err = scheduling.ParseClock("event.startTime", ev.StartTime); err != nil {
			return err
		}
		if endMin, err = scheduling.ParseClock("event.endTime", ev.EndTime); err != nil {
			return err
		}
	}

	entry := cal.AddEvent(ev.ID)
	entry.SetDtStampTime(ev.UpdatedAt)

	summary := ev.Title
	if summary == "" {
		summary = string(ev.EventType)
	}
	entry.SetSummary(summary)

	if ev.HasTimeOfDay() {
		entry.SetStartAt(start.Add(time.Duration(startMin) * time.Minute))
		entry.SetEndAt(end.Add(time.Duration(endMin) * time.Minute))
	} else {
		entry.SetAllDayStartAt(start)
		// DTEND is exclusive for all-day entries
		entry.SetAllDayEndAt(end.AddDate(0, 0, 1))
	}

	if ev.Location != "" {
		entry.SetLocation(ev.Location)
	}
	if ev.Notes != "" {
		entry.SetDescription(ev.Notes)
	}
	if ev.ClientName != "" {
		entry.SetOrganizer(ev.ClientName)
	}
	if ev.Recurrence != "" {
		entry.AddRrule(ev.Recurrence)
	}

	return nil
}
