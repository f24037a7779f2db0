package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/alerts"
	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/scheduling"
)

// AlertEvaluation is the outcome of one evaluator pass
type AlertEvaluation struct {
	TriggeredCount int
	Pairs          []alerts.Trigger
}

// AlertEvaluationStore defines the database operations needed to evaluate alerts
type AlertEvaluationStore interface {
	GetEnabledRules(ctx context.Context) ([]model.AlertRule, error)
	GetEventsInRange(ctx context.Context, startDate, endDate string) ([]model.CalendarEvent, error)
}

// EvaluateAlerts loads every enabled rule and every event due in the next
// thirty days, then returns the (rule, event) pairs whose trigger condition
// holds at "now". It performs no delivery; pairs are re-reported on every
// call within the same trigger window.
func EvaluateAlerts(ctx context.Context, store AlertEvaluationStore, logger *zap.Logger, now time.Time) (*AlertEvaluation, error) {
	logger.Debug("Evaluating alert rules", zap.Time("now", now))

	rules, err := store.GetEnabledRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enabled rules: %w", err)
	}
	if len(rules) == 0 {
		logger.Info("No enabled alert rules")
		return &AlertEvaluation{Pairs: []alerts.Trigger{}}, nil
	}

	today := scheduling.StartOfDay(now)
	windowEnd := today.AddDate(0, 0, alerts.LookaheadDays)

	events, err := store.GetEventsInRange(ctx,
		today.Format(scheduling.DateLayout),
		windowEnd.Format(scheduling.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming events: %w", err)
	}

	logger.Debug("Loaded evaluation inputs",
		zap.Int("rules", len(rules)),
		zap.Int("events", len(events)))

	triggered := alerts.Evaluate(now, rules, events)

	logger.Info("Alert evaluation completed",
		zap.Int("rules", len(rules)),
		zap.Int("events", len(events)),
		zap.Int("triggered", len(triggered)))

	return &AlertEvaluation{
		TriggeredCount: len(triggered),
		Pairs:          triggered,
	}, nil
}
