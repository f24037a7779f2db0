package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/alerts"
	"github.com/altamoda/agencyboard/pkg/core/model"
)

// EmailSender delivers a rendered alert by email
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

// SlackSender delivers a rendered alert to a Slack webhook
type SlackSender interface {
	PostMessage(ctx context.Context, webhookURL, text string) error
}

// DispatchStore defines the database operations needed to dispatch alerts
type DispatchStore interface {
	InsertNotification(ctx context.Context, notification *model.Notification) error
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
}

// DeliveryFailure records one channel send that did not go through
type DeliveryFailure struct {
	RuleID  string
	EventID string
	Channel model.AlertChannel
	Err     error
}

// DispatchResult summarizes one dispatch pass
type DispatchResult struct {
	Recorded int
	Sent     int
	Failures []DeliveryFailure
}

// DispatchAlerts renders a message for each triggered (rule, event) pair,
// records an in-app notification, and sends to each configured channel.
// Channel failures are collected rather than aborting the pass: one broken
// webhook must not stop the remaining alerts. Dedup across repeated
// evaluator passes is not attempted here.
func DispatchAlerts(
	ctx context.Context,
	store DispatchStore,
	email EmailSender,
	slack SlackSender,
	logger *zap.Logger,
	triggers []alerts.Trigger,
) (*DispatchResult, error) {
	result := &DispatchResult{}

	for _, trigger := range triggers {
		message := renderAlertMessage(ctx, store, trigger)

		notification := &model.Notification{
			ID:        uuid.New().String(),
			RuleID:    trigger.Rule.ID,
			RuleName:  trigger.Rule.Name,
			EventID:   trigger.Event.ID,
			ModelID:   trigger.Event.ModelID,
			Message:   message,
			CreatedAt: time.Now(),
		}
		if err := store.InsertNotification(ctx, notification); err != nil {
			return nil, fmt.Errorf("failed to record notification: %w", err)
		}
		result.Recorded++

		if trigger.Rule.HasChannel(model.ChannelEmail) && email != nil {
			subject := fmt.Sprintf("[Agency Board] %s", trigger.Rule.Name)
			sent := 0
			for _, recipient := range splitRecipients(trigger.Rule.EmailRecipients) {
				if err := email.SendEmail(recipient, subject, message); err != nil {
					logger.Warn("Email delivery failed",
						zap.String("rule_id", trigger.Rule.ID),
						zap.String("recipient", recipient),
						zap.Error(err))
					result.Failures = append(result.Failures, DeliveryFailure{
						RuleID:  trigger.Rule.ID,
						EventID: trigger.Event.ID,
						Channel: model.ChannelEmail,
						Err:     err,
					})
					continue
				}
				sent++
			}
			result.Sent += sent
		}

		if trigger.Rule.HasChannel(model.ChannelSlack) && slack != nil {
			if err := slack.PostMessage(ctx, trigger.Rule.SlackWebhookURL, message); err != nil {
				logger.Warn("Slack delivery failed",
					zap.String("rule_id", trigger.Rule.ID),
					zap.Error(err))
				result.Failures = append(result.Failures, DeliveryFailure{
					RuleID:  trigger.Rule.ID,
					EventID: trigger.Event.ID,
					Channel: model.ChannelSlack,
					Err:     err,
				})
			} else {
				result.Sent++
			}
		}
	}

	logger.Info("Alert dispatch completed",
		zap.Int("recorded", result.Recorded),
		zap.Int("sent", result.Sent),
		zap.Int("failures", len(result.Failures)))

	return result, nil
}

// renderAlertMessage builds the human-readable notification text for a
// triggered pair. Profile lookup failures fall back to the raw model ID.
func renderAlertMessage(ctx context.Context, store DispatchStore, trigger alerts.Trigger) string {
	ev := trigger.Event

	modelName := ev.ModelID
	if profile, err := store.GetProfile(ctx, ev.ModelID); err == nil {
		modelName = profile.FullName()
	}

	title := ev.Title
	if title == "" {
		title = string(ev.EventType)
	}

	var when string
	switch trigger.Rule.Trigger.Timing {
	case model.TimingBefore:
		when = fmt.Sprintf("in %d %s", trigger.Rule.Trigger.Value, trigger.Rule.Trigger.Unit)
	case model.TimingAfter:
		when = fmt.Sprintf("%d %s ago", trigger.Rule.Trigger.Value, trigger.Rule.Trigger.Unit)
	default:
		when = "today"
	}

	message := fmt.Sprintf("%s: %s for %s is %s (%s)", trigger.Rule.Name, title, modelName, when, ev.StartDate)
	if ev.ClientName != "" {
		message += fmt.Sprintf(" - client %s", ev.ClientName)
	}
	return message
}

func splitRecipients(recipients string) []string {
	var out []string
	for _, r := range strings.Split(recipients, ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}
