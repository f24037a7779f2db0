package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/scheduling"
	"github.com/altamoda/agencyboard/pkg/db"
)

// EventWriteStore defines the database operations needed for event writes
type EventWriteStore interface {
	ConflictCheckStore
	GetEvent(ctx context.Context, id string) (*model.CalendarEvent, error)
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	InsertEvent(ctx context.Context, event *model.CalendarEvent) error
	UpdateEvent(ctx context.Context, event *model.CalendarEvent) error
	DeleteEvent(ctx context.Context, id string) error
}

// CreateEventInput carries the fields for a new calendar event
type CreateEventInput struct {
	ModelID   string
	EventType string
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string

	Title      string
	ClientName string
	Location   string
	CallTime   string
	Duration   string
	Notes      string

	AvailabilityStatus string
	OptionExpiry       string
	OptionPriority     int
	OptionClient       string
	Recurrence         string

	CreatedBy string
}

// EventWriteResult pairs the stored event with the conflicts found at write
// time. Conflicts are advisory: the write proceeds, the admin decides.
type EventWriteResult struct {
	Event     *model.CalendarEvent
	Conflicts []model.CalendarEvent
}

// CreateEvent validates and persists a new calendar event, reporting any
// scheduling conflicts alongside
func CreateEvent(ctx context.Context, store EventWriteStore, logger *zap.Logger, input CreateEventInput) (*EventWriteResult, error) {
	if input.ModelID == "" {
		return nil, &scheduling.InvalidInputError{Field: "modelId", Value: "", Reason: "required"}
	}
	if _, err := store.GetProfile(ctx, input.ModelID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &scheduling.InvalidInputError{Field: "modelId", Value: input.ModelID, Reason: "unknown model"}
		}
		return nil, fmt.Errorf("failed to look up model: %w", err)
	}

	event := &model.CalendarEvent{
		ID:                 uuid.New().String(),
		ModelID:            input.ModelID,
		EventType:          model.EventType(input.EventType),
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
		Title:              input.Title,
		ClientName:         input.ClientName,
		Location:           input.Location,
		CallTime:           input.CallTime,
		Duration:           input.Duration,
		Notes:              input.Notes,
		AvailabilityStatus: model.AvailabilityStatus(input.AvailabilityStatus),
		OptionExpiry:       input.OptionExpiry,
		OptionPriority:     input.OptionPriority,
		OptionClient:       input.OptionClient,
		Recurrence:         input.Recurrence,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
		CreatedBy:          input.CreatedBy,
	}

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	conflicts, err := CheckConflicts(ctx, store, logger, CheckConflictsInput{
		ModelID:   event.ModelID,
		StartDate: event.StartDate,
		EndDate:   event.EndDate,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}

	if err := store.InsertEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	logger.Info("Event created",
		zap.String("event_id", event.ID),
		zap.String("model_id", event.ModelID),
		zap.String("event_type", string(event.EventType)),
		zap.Int("conflicts", len(conflicts)))

	return &EventWriteResult{Event: event, Conflicts: conflicts}, nil
}

// UpdateEventInput carries a partial update; nil fields are left unchanged
type UpdateEventInput struct {
	EventType *string
	StartDate *string
	EndDate   *string
	StartTime *string
	EndTime   *string

	Title      *string
	ClientName *string
	Location   *string
	CallTime   *string
	Duration   *string
	Notes      *string

	AvailabilityStatus *string
	OptionExpiry       *string
	OptionPriority     *int
	OptionClient       *string
	Recurrence         *string
}

// UpdateEvent applies a partial update to an existing event, excluding the
// event itself from the accompanying conflict check
func UpdateEvent(ctx context.Context, store EventWriteStore, logger *zap.Logger, id string, input UpdateEventInput) (*EventWriteResult, error) {
	event, err := store.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	if input.EventType != nil {
		event.EventType = model.EventType(*input.EventType)
	}
	applyString(&event.StartDate, input.StartDate)
	applyString(&event.EndDate, input.EndDate)
	applyString(&event.StartTime, input.StartTime)
	applyString(&event.EndTime, input.EndTime)
	applyString(&event.Title, input.Title)
	applyString(&event.ClientName, input.ClientName)
	applyString(&event.Location, input.Location)
	applyString(&event.CallTime, input.CallTime)
	applyString(&event.Duration, input.Duration)
	applyString(&event.Notes, input.Notes)
	if input.AvailabilityStatus != nil {
		event.AvailabilityStatus = model.AvailabilityStatus(*input.AvailabilityStatus)
	}
	applyString(&event.OptionExpiry, input.OptionExpiry)
	if input.OptionPriority != nil {
		event.OptionPriority = *input.OptionPriority
	}
	applyString(&event.OptionClient, input.OptionClient)
	applyString(&event.Recurrence, input.Recurrence)
	event.UpdatedAt = time.Now()

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	conflicts, err := CheckConflicts(ctx, store, logger, CheckConflictsInput{
		ModelID:        event.ModelID,
		StartDate:      event.StartDate,
		EndDate:        event.EndDate,
		StartTime:      event.StartTime,
		EndTime:        event.EndTime,
		ExcludeEventID: event.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}

	if err := store.UpdateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	logger.Info("Event updated",
		zap.String("event_id", event.ID),
		zap.Int("conflicts", len(conflicts)))

	return &EventWriteResult{Event: event, Conflicts: conflicts}, nil
}

// DeleteEvent removes an event. No other entities are touched.
func DeleteEvent(ctx context.Context, store EventWriteStore, logger *zap.Logger, id string) error {
	if err := store.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	logger.Info("Event deleted", zap.String("event_id", id))
	return nil
}

// validateEvent enforces the field-level invariants for a calendar event
func validateEvent(event *model.CalendarEvent) error {
	if !event.EventType.IsValid() {
		return &scheduling.InvalidInputError{Field: "eventType", Value: string(event.EventType), Reason: "unknown event type"}
	}

	start, err := scheduling.ParseDate("startDate", event.StartDate)
	if err != nil {
		return err
	}
	if event.EndDate != "" {
		end, err := scheduling.ParseDate("endDate", event.EndDate)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return &scheduling.InvalidInputError{Field: "endDate", Value: event.EndDate, Reason: "before startDate"}
		}
	}

	if (event.StartTime == "") != (event.EndTime == "") {
		return &scheduling.InvalidInputError{Field: "endTime", Value: event.EndTime, Reason: "startTime and endTime must be given together"}
	}
	if event.StartTime != "" {
		if _, err := scheduling.ParseClock("startTime", event.StartTime); err != nil {
			return err
		}
		if _, err := scheduling.ParseClock("endTime", event.EndTime); err != nil {
			return err
		}
	}

	if event.AvailabilityStatus != "" && !event.AvailabilityStatus.IsValid() {
		return &scheduling.InvalidInputError{Field: "availabilityStatus", Value: string(event.AvailabilityStatus), Reason: "unknown status"}
	}
	if event.OptionPriority < 0 || event.OptionPriority > 5 {
		return &scheduling.InvalidInputError{Field: "optionPriority", Value: fmt.Sprint(event.OptionPriority), Reason: "must be between 1 and 5"}
	}
	if event.OptionExpiry != "" {
		if _, err := scheduling.ParseDate("optionExpiry", event.OptionExpiry); err != nil {
			return err
		}
	}
	if event.Recurrence != "" {
		if _, err := rrule.StrToRRule(event.Recurrence); err != nil {
			return &scheduling.InvalidInputError{Field: "recurrence", Value: event.Recurrence, Reason: "invalid rrule"}
		}
	}

	return nil
}
