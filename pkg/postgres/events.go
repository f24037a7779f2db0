package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/db"
)

const eventColumns = `id, model_id, event_type, start_date, end_date, start_time, end_time,
	title, client_name, location, call_time, duration, notes, availability_status,
	option_expiry, option_priority, option_client, recurrence, created_at, updated_at, created_by`

func scanEvent(row pgx.Row) (*model.CalendarEvent, error) {
	var ev model.CalendarEvent
	var endDate, startTime, endTime, title, clientName, location *string
	var callTime, duration, notes, availabilityStatus *string
	var optionExpiry, optionClient, recurrence, createdBy *string
	var optionPriority *int

	err := row.Scan(
		&ev.ID, &ev.ModelID, &ev.EventType, &ev.StartDate, &endDate, &startTime, &endTime,
		&title, &clientName, &location, &callTime, &duration, &notes, &availabilityStatus,
		&optionExpiry, &optionPriority, &optionClient, &recurrence, &ev.CreatedAt, &ev.UpdatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&ev.EndDate, endDate)
	setString(&ev.StartTime, startTime)
	setString(&ev.EndTime, endTime)
	setString(&ev.Title, title)
	setString(&ev.ClientName, clientName)
	setString(&ev.Location, location)
	setString(&ev.CallTime, callTime)
	setString(&ev.Duration, duration)
	setString(&ev.Notes, notes)
	setString(&ev.OptionExpiry, optionExpiry)
	setString(&ev.OptionClient, optionClient)
	setString(&ev.Recurrence, recurrence)
	setString(&ev.CreatedBy, createdBy)
	if availabilityStatus != nil {
		ev.AvailabilityStatus = model.AvailabilityStatus(*availabilityStatus)
	}
	if optionPriority != nil {
		ev.OptionPriority = *optionPriority
	}

	return &ev, nil
}

func collectEvents(rows pgx.Rows) ([]model.CalendarEvent, error) {
	defer rows.Close()

	events := []model.CalendarEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetEvent retrieves a single event by ID
func (d *DB) GetEvent(ctx context.Context, id string) (*model.CalendarEvent, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM calendar_event WHERE id = $1`, id)
	ev, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}
	return ev, nil
}

// GetEventsForModel retrieves all events owned by a model
func (d *DB) GetEventsForModel(ctx context.Context, modelID string) ([]model.CalendarEvent, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM calendar_event
		WHERE model_id = $1
		ORDER BY start_date, created_at
	`, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for model: %w", err)
	}
	return collectEvents(rows)
}

// GetEventsInRange retrieves all events overlapping the closed date range
func (d *DB) GetEventsInRange(ctx context.Context, startDate, endDate string) ([]model.CalendarEvent, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM calendar_event
		WHERE start_date <= $2 AND COALESCE(end_date, start_date) >= $1
		ORDER BY start_date, created_at
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query events in range: %w", err)
	}
	return collectEvents(rows)
}

// InsertEvent inserts a new event record
func (d *DB) InsertEvent(ctx context.Context, ev *model.CalendarEvent) error {
	var optionPriority *int
	if ev.OptionPriority != 0 {
		optionPriority = &ev.OptionPriority
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO calendar_event (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`,
		ev.ID, ev.ModelID, string(ev.EventType), ev.StartDate, nullable(ev.EndDate),
		nullable(ev.StartTime), nullable(ev.EndTime), nullable(ev.Title), nullable(ev.ClientName),
		nullable(ev.Location), nullable(ev.CallTime), nullable(ev.Duration), nullable(ev.Notes),
		nullable(string(ev.AvailabilityStatus)), nullable(ev.OptionExpiry), optionPriority,
		nullable(ev.OptionClient), nullable(ev.Recurrence), ev.CreatedAt, ev.UpdatedAt, nullable(ev.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// UpdateEvent replaces an existing event record by ID
func (d *DB) UpdateEvent(ctx context.Context, ev *model.CalendarEvent) error {
	var optionPriority *int
	if ev.OptionPriority != 0 {
		optionPriority = &ev.OptionPriority
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE calendar_event SET
			model_id = $2, event_type = $3, start_date = $4, end_date = $5,
			start_time = $6, end_time = $7, title = $8, client_name = $9,
			location = $10, call_time = $11, duration = $12, notes = $13,
			availability_status = $14, option_expiry = $15, option_priority = $16,
			option_client = $17, recurrence = $18, updated_at = $19
		WHERE id = $1
	`,
		ev.ID, ev.ModelID, string(ev.EventType), ev.StartDate, nullable(ev.EndDate),
		nullable(ev.StartTime), nullable(ev.EndTime), nullable(ev.Title), nullable(ev.ClientName),
		nullable(ev.Location), nullable(ev.CallTime), nullable(ev.Duration), nullable(ev.Notes),
		nullable(string(ev.AvailabilityStatus)), nullable(ev.OptionExpiry), optionPriority,
		nullable(ev.OptionClient), nullable(ev.Recurrence), ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update event %s: %w", ev.ID, db.ErrNotFound)
	}
	return nil
}

// DeleteEvent removes an event record by ID
func (d *DB) DeleteEvent(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM calendar_event WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete event %s: %w", id, db.ErrNotFound)
	}
	return nil
}
