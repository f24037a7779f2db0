package jsonstore

import (
	"context"
	"fmt"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/db"
)

const eventsCollection = "calendar_events"

// GetEvent retrieves a single event by ID
func (s *Store) GetEvent(ctx context.Context, id string) (*model.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := readCollection[model.CalendarEvent](s, eventsCollection)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, db.ErrNotFound
}

// GetEventsForModel retrieves all events owned by a model. A model with no
// events yields an empty slice.
func (s *Store) GetEventsForModel(ctx context.Context, modelID string) ([]model.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := readCollection[model.CalendarEvent](s, eventsCollection)
	if err != nil {
		return nil, err
	}

	result := []model.CalendarEvent{}
	for _, ev := range events {
		if ev.ModelID == modelID {
			result = append(result, ev)
		}
	}
	return result, nil
}

// GetEventsInRange retrieves all events whose date range overlaps the given
// closed date range, across all models. Dates are "2006-01-02" strings, which
// order lexically.
func (s *Store) GetEventsInRange(ctx context.Context, startDate, endDate string) ([]model.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := readCollection[model.CalendarEvent](s, eventsCollection)
	if err != nil {
		return nil, err
	}

	result := []model.CalendarEvent{}
	for _, ev := range events {
		if ev.StartDate <= endDate && ev.EffectiveEndDate() >= startDate {
			result = append(result, ev)
		}
	}
	return result, nil
}

// InsertEvent appends a new event record
func (s *Store) InsertEvent(ctx context.Context, event *model.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := readCollection[model.CalendarEvent](s, eventsCollection)
	if err != nil {
		return err
	}
	events = append(events, *event)
	return writeCollection(s, eventsCollection, events)
}

// UpdateEvent replaces an existing event record by ID
func (s *Store) UpdateEvent(ctx context.Context, event *model.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := readCollection[model.CalendarEvent](s, eventsCollection)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = *event
			return writeCollection(s, eventsCollection, events)
		}
	}
	return fmt.Errorf("update event %s: %w", event.ID, db.ErrNotFound)
}

// DeleteEvent removes an event record by ID
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := readCollection[model.CalendarEvent](s, eventsCollection)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == id {
			events = append(events[:i], events[i+1:]...)
			return writeCollection(s, eventsCollection, events)
		}
	}
	return fmt.Errorf("delete event %s: %w", id, db.ErrNotFound)
}
