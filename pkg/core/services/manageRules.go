package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/scheduling"
)

// RuleWriteStore defines the database operations needed for rule writes
type RuleWriteStore interface {
	GetRule(ctx context.Context, id string) (*model.AlertRule, error)
	InsertRule(ctx context.Context, rule *model.AlertRule) error
	UpdateRule(ctx context.Context, rule *model.AlertRule) error
	DeleteRule(ctx context.Context, id string) error
}

// CreateRuleInput carries the fields for a new alert rule
type CreateRuleInput struct {
	Name            string
	Enabled         bool
	EventType       string
	Timing          string
	Value           int
	Unit            string
	Channels        []string
	EmailRecipients string
	SlackWebhookURL string
	CreatedBy       string
}

// CreateRule validates, normalizes, and persists a new alert rule
func CreateRule(ctx context.Context, store RuleWriteStore, logger *zap.Logger, input CreateRuleInput) (*model.AlertRule, error) {
	rule := &model.AlertRule{
		ID:      uuid.New().String(),
		Name:    input.Name,
		Enabled: input.Enabled,
		Trigger: model.AlertTrigger{
			EventType: model.EventType(input.EventType),
			Timing:    model.TriggerTiming(input.Timing),
			Value:     input.Value,
			Unit:      model.TriggerUnit(input.Unit),
		},
		EmailRecipients: input.EmailRecipients,
		SlackWebhookURL: input.SlackWebhookURL,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
		CreatedBy:       input.CreatedBy,
	}
	rule.Channels = make([]model.AlertChannel, 0, len(input.Channels))
	for _, c := range input.Channels {
		rule.Channels = append(rule.Channels, model.AlertChannel(c))
	}

	if err := validateRule(rule); err != nil {
		return nil, err
	}
	normalizeRule(rule)

	if err := store.InsertRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to insert rule: %w", err)
	}

	logger.Info("Alert rule created",
		zap.String("rule_id", rule.ID),
		zap.String("name", rule.Name),
		zap.Bool("enabled", rule.Enabled))

	return rule, nil
}

// UpdateRuleInput carries a partial rule update; nil fields are left unchanged
type UpdateRuleInput struct {
	Name            *string
	Enabled         *bool
	EventType       *string
	Timing          *string
	Value           *int
	Unit            *string
	Channels        *[]string
	EmailRecipients *string
	SlackWebhookURL *string
}

// UpdateRule applies a partial update to an existing alert rule
func UpdateRule(ctx context.Context, store RuleWriteStore, logger *zap.Logger, id string, input UpdateRuleInput) (*model.AlertRule, error) {
	rule, err := store.GetRule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rule: %w", err)
	}

	if input.Name != nil {
		rule.Name = *input.Name
	}
	if input.Enabled != nil {
		rule.Enabled = *input.Enabled
	}
	if input.EventType != nil {
		rule.Trigger.EventType = model.EventType(*input.EventType)
	}
	if input.Timing != nil {
		rule.Trigger.Timing = model.TriggerTiming(*input.Timing)
	}
	if input.Value != nil {
		rule.Trigger.Value = *input.Value
	}
	if input.Unit != nil {
		rule.Trigger.Unit = model.TriggerUnit(*input.Unit)
	}
	if input.Channels != nil {
		rule.Channels = make([]model.AlertChannel, 0, len(*input.Channels))
		for _, c := range *input.Channels {
			rule.Channels = append(rule.Channels, model.AlertChannel(c))
		}
	}
	if input.EmailRecipients != nil {
		rule.EmailRecipients = *input.EmailRecipients
	}
	if input.SlackWebhookURL != nil {
		rule.SlackWebhookURL = *input.SlackWebhookURL
	}
	rule.UpdatedAt = time.Now()

	if err := validateRule(rule); err != nil {
		return nil, err
	}
	normalizeRule(rule)

	if err := store.UpdateRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}

	logger.Info("Alert rule updated", zap.String("rule_id", rule.ID))

	return rule, nil
}

// DeleteRule removes an alert rule. Past notifications are untouched.
func DeleteRule(ctx context.Context, store RuleWriteStore, logger *zap.Logger, id string) error {
	if err := store.DeleteRule(ctx, id); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	logger.Info("Alert rule deleted", zap.String("rule_id", id))
	return nil
}

// validateRule enforces the field-level invariants for an alert rule
func validateRule(rule *model.AlertRule) error {
	if rule.Name == "" {
		return &scheduling.InvalidInputError{Field: "name", Value: "", Reason: "required"}
	}
	if !rule.Trigger.EventType.IsValid() {
		return &scheduling.InvalidInputError{Field: "trigger.eventType", Value: string(rule.Trigger.EventType), Reason: "unknown event type"}
	}
	if !rule.Trigger.Timing.IsValid() {
		return &scheduling.InvalidInputError{Field: "trigger.timing", Value: string(rule.Trigger.Timing), Reason: "must be before, on, or after"}
	}
	if !rule.Trigger.Unit.IsValid() {
		return &scheduling.InvalidInputError{Field: "trigger.unit", Value: string(rule.Trigger.Unit), Reason: "must be days or hours"}
	}
	if rule.Trigger.Value < 0 {
		return &scheduling.InvalidInputError{Field: "trigger.value", Value: fmt.Sprint(rule.Trigger.Value), Reason: "must be non-negative"}
	}

	for _, c := range rule.Channels {
		if !c.IsValid() {
			return &scheduling.InvalidInputError{Field: "channels", Value: string(c), Reason: "unknown channel"}
		}
	}
	if rule.HasChannel(model.ChannelEmail) && rule.EmailRecipients == "" {
		return &scheduling.InvalidInputError{Field: "emailRecipients", Value: "", Reason: "required when email channel is enabled"}
	}
	if rule.HasChannel(model.ChannelSlack) && rule.SlackWebhookURL == "" {
		return &scheduling.InvalidInputError{Field: "slackWebhookUrl", Value: "", Reason: "required when slack channel is enabled"}
	}

	return nil
}

// normalizeRule pins "on" triggers to a zero-day offset so the evaluator's
// detection window is always the 24h day window
func normalizeRule(rule *model.AlertRule) {
	if rule.Trigger.Timing == model.TimingOn {
		rule.Trigger.Value = 0
		rule.Trigger.Unit = model.UnitDays
	}
}
