package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/db"
)

const ruleColumns = `id, name, enabled, trigger_event_type, trigger_timing, trigger_value,
	trigger_unit, channels, email_recipients, slack_webhook_url, created_at, updated_at, created_by`

func scanRule(row pgx.Row) (*model.AlertRule, error) {
	var r model.AlertRule
	var channels []string
	var emailRecipients, slackWebhookURL, createdBy *string

	err := row.Scan(
		&r.ID, &r.Name, &r.Enabled, &r.Trigger.EventType, &r.Trigger.Timing,
		&r.Trigger.Value, &r.Trigger.Unit, &channels, &emailRecipients,
		&slackWebhookURL, &r.CreatedAt, &r.UpdatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}

	r.Channels = make([]model.AlertChannel, 0, len(channels))
	for _, c := range channels {
		r.Channels = append(r.Channels, model.AlertChannel(c))
	}
	if emailRecipients != nil {
		r.EmailRecipients = *emailRecipients
	}
	if slackWebhookURL != nil {
		r.SlackWebhookURL = *slackWebhookURL
	}
	if createdBy != nil {
		r.CreatedBy = *createdBy
	}

	return &r, nil
}

func collectRules(rows pgx.Rows) ([]model.AlertRule, error) {
	defer rows.Close()

	rules := []model.AlertRule{}
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}
	return rules, nil
}

func channelStrings(channels []model.AlertChannel) []string {
	out := make([]string, 0, len(channels))
	for _, c := range channels {
		out = append(out, string(c))
	}
	return out
}

// GetRule retrieves a single alert rule by ID
func (d *DB) GetRule(ctx context.Context, id string) (*model.AlertRule, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+ruleColumns+` FROM alert_rule WHERE id = $1`, id)
	r, err := scanRule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rule: %w", err)
	}
	return r, nil
}

// GetRules retrieves every alert rule
func (d *DB) GetRules(ctx context.Context) ([]model.AlertRule, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+ruleColumns+` FROM alert_rule ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	return collectRules(rows)
}

// GetEnabledRules retrieves only enabled alert rules
func (d *DB) GetEnabledRules(ctx context.Context) ([]model.AlertRule, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+ruleColumns+` FROM alert_rule WHERE enabled ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query enabled rules: %w", err)
	}
	return collectRules(rows)
}

// InsertRule inserts a new alert rule record
func (d *DB) InsertRule(ctx context.Context, r *model.AlertRule) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO alert_rule (`+ruleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		r.ID, r.Name, r.Enabled, string(r.Trigger.EventType), string(r.Trigger.Timing),
		r.Trigger.Value, string(r.Trigger.Unit), channelStrings(r.Channels),
		nullable(r.EmailRecipients), nullable(r.SlackWebhookURL),
		r.CreatedAt, r.UpdatedAt, nullable(r.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}
	return nil
}

// UpdateRule replaces an existing alert rule record by ID
func (d *DB) UpdateRule(ctx context.Context, r *model.AlertRule) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE alert_rule SET
			name = $2, enabled = $3, trigger_event_type = $4, trigger_timing = $5,
			trigger_value = $6, trigger_unit = $7, channels = $8,
			email_recipients = $9, slack_webhook_url = $10, updated_at = $11
		WHERE id = $1
	`,
		r.ID, r.Name, r.Enabled, string(r.Trigger.EventType), string(r.Trigger.Timing),
		r.Trigger.Value, string(r.Trigger.Unit), channelStrings(r.Channels),
		nullable(r.EmailRecipients), nullable(r.SlackWebhookURL), r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update rule %s: %w", r.ID, db.ErrNotFound)
	}
	return nil
}

// DeleteRule removes an alert rule record by ID
func (d *DB) DeleteRule(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM alert_rule WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete rule %s: %w", id, db.ErrNotFound)
	}
	return nil
}
