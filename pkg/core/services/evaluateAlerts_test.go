package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/model"
)

func enabledRule(id string, eventType model.EventType, timing model.TriggerTiming, value int, unit model.TriggerUnit) model.AlertRule {
	return model.AlertRule{
		ID:      id,
		Name:    id,
		Enabled: true,
		Trigger: model.AlertTrigger{
			EventType: eventType,
			Timing:    timing,
			Value:     value,
			Unit:      unit,
		},
	}
}

func TestEvaluateAlerts_NoEnabledRules(t *testing.T) {
	mock := &mockStore{
		rules: []model.AlertRule{
			{ID: "off", Enabled: false},
		},
		// A store error here proves the events are never fetched
		eventsErr: fmt.Errorf("should not be called"),
	}

	result, err := EvaluateAlerts(context.Background(), mock, zap.NewNop(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, result.TriggeredCount)
	assert.Empty(t, result.Pairs)
}

func TestEvaluateAlerts_TriggersDueRules(t *testing.T) {
	now := time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC)
	mock := &mockStore{
		rules: []model.AlertRule{
			enabledRule("due", model.EventOption, model.TimingBefore, 7, model.UnitDays),
			enabledRule("not-due", model.EventOption, model.TimingBefore, 3, model.UnitDays),
			enabledRule("wrong-type", model.EventJob, model.TimingOn, 0, model.UnitDays),
		},
		events: []model.CalendarEvent{
			{ID: "option", ModelID: "model-1", EventType: model.EventOption, StartDate: "2025-06-12"},
		},
	}

	result, err := EvaluateAlerts(context.Background(), mock, zap.NewNop(), now)
	require.NoError(t, err)
	require.Equal(t, 1, result.TriggeredCount)
	assert.Equal(t, "due", result.Pairs[0].Rule.ID)
	assert.Equal(t, "option", result.Pairs[0].Event.ID)
}

func TestEvaluateAlerts_WindowExcludesDistantEvents(t *testing.T) {
	now := time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC)
	mock := &mockStore{
		rules: []model.AlertRule{
			enabledRule("r", model.EventOption, model.TimingOn, 0, model.UnitDays),
		},
		events: []model.CalendarEvent{
			// Outside the thirty-day lookahead
			{ID: "far", ModelID: "model-1", EventType: model.EventOption, StartDate: "2025-08-20"},
		},
	}

	result, err := EvaluateAlerts(context.Background(), mock, zap.NewNop(), now)
	require.NoError(t, err)
	assert.Zero(t, result.TriggeredCount)
}

func TestEvaluateAlerts_StoreErrorPropagates(t *testing.T) {
	mock := &mockStore{
		rules: []model.AlertRule{
			enabledRule("r", model.EventOption, model.TimingOn, 0, model.UnitDays),
		},
		eventsErr: fmt.Errorf("connection refused"),
	}

	_, err := EvaluateAlerts(context.Background(), mock, zap.NewNop(), time.Now())
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")

	mock = &mockStore{rulesErr: fmt.Errorf("connection refused")}
	_, err = EvaluateAlerts(context.Background(), mock, zap.NewNop(), time.Now())
	require.Error(t, err)
}
