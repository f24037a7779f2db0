package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altamoda/agencyboard/pkg/core/model"
)

func rule(timing model.TriggerTiming, value int, unit model.TriggerUnit) model.AlertRule {
	return model.AlertRule{
		ID:      "rule-1",
		Name:    "option check-in",
		Enabled: true,
		Trigger: model.AlertTrigger{
			EventType: model.EventOption,
			Timing:    timing,
			Value:     value,
			Unit:      unit,
		},
	}
}

func optionEvent(id, startDate string) model.CalendarEvent {
	return model.CalendarEvent{
		ID:        id,
		ModelID:   "model-1",
		EventType: model.EventOption,
		StartDate: startDate,
	}
}

func TestEvaluate_BeforeDays(t *testing.T) {
	rules := []model.AlertRule{rule(model.TimingBefore, 7, model.UnitDays)}
	events := []model.CalendarEvent{optionEvent("ev-1", "2025-06-12")}

	// Exactly 7 days before the event, at midnight
	now := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	triggered := Evaluate(now, rules, events)
	require.Len(t, triggered, 1)
	assert.Equal(t, "rule-1", triggered[0].Rule.ID)
	assert.Equal(t, "ev-1", triggered[0].Event.ID)

	// Any time within the following 24 hours still fires
	now = time.Date(2025, 6, 5, 23, 59, 0, 0, time.UTC)
	assert.Len(t, Evaluate(now, rules, events), 1)

	// Past the detection window the alert is silently missed
	now = time.Date(2025, 6, 6, 0, 0, 1, 0, time.UTC)
	assert.Empty(t, Evaluate(now, rules, events))
}

func TestEvaluate_BeforeDaysTooEarly(t *testing.T) {
	rules := []model.AlertRule{rule(model.TimingBefore, 7, model.UnitDays)}
	events := []model.CalendarEvent{optionEvent("ev-1", "2025-06-14")}

	// 9 days out: the condition has not become true yet
	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	assert.Empty(t, Evaluate(now, rules, events))
}

func TestEvaluate_BeforeHours(t *testing.T) {
	rules := []model.AlertRule{rule(model.TimingBefore, 12, model.UnitHours)}
	events := []model.CalendarEvent{optionEvent("ev-1", "2025-06-06")}

	// Trigger instant is 12:00 the previous day; the window is one hour
	assert.Empty(t, Evaluate(time.Date(2025, 6, 5, 11, 30, 0, 0, time.UTC), rules, events))
	assert.Len(t, Evaluate(time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC), rules, events), 1)
	assert.Len(t, Evaluate(time.Date(2025, 6, 5, 12, 59, 0, 0, time.UTC), rules, events), 1)
	assert.Empty(t, Evaluate(time.Date(2025, 6, 5, 13, 0, 1, 0, time.UTC), rules, events))
}

func TestEvaluate_OnDay(t *testing.T) {
	rules := []model.AlertRule{rule(model.TimingOn, 0, model.UnitDays)}
	events := []model.CalendarEvent{optionEvent("ev-1", "2025-06-05")}

	// Fires at any time of the event day, and re-fires on repeated calls
	for _, hour := range []int{0, 9, 23} {
		now := time.Date(2025, 6, 5, hour, 30, 0, 0, time.UTC)
		assert.Len(t, Evaluate(now, rules, events), 1, "hour %d", hour)
	}

	assert.Empty(t, Evaluate(time.Date(2025, 6, 4, 23, 0, 0, 0, time.UTC), rules, events))
	assert.Empty(t, Evaluate(time.Date(2025, 6, 6, 1, 0, 0, 0, time.UTC), rules, events))
}

func TestEvaluate_AfterDays(t *testing.T) {
	rules := []model.AlertRule{rule(model.TimingAfter, 2, model.UnitDays)}
	events := []model.CalendarEvent{optionEvent("ev-1", "2025-06-03")}

	assert.Len(t, Evaluate(time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC), rules, events), 1)
	assert.Empty(t, Evaluate(time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC), rules, events))
}

func TestEvaluate_DisabledRuleNeverFires(t *testing.T) {
	r := rule(model.TimingOn, 0, model.UnitDays)
	r.Enabled = false
	events := []model.CalendarEvent{optionEvent("ev-1", "2025-06-05")}

	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	assert.Empty(t, Evaluate(now, []model.AlertRule{r}, events))
}

func TestEvaluate_EventTypeMustMatch(t *testing.T) {
	rules := []model.AlertRule{rule(model.TimingOn, 0, model.UnitDays)}
	events := []model.CalendarEvent{{
		ID:        "ev-1",
		EventType: model.EventJob,
		StartDate: "2025-06-05",
	}}

	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	assert.Empty(t, Evaluate(now, rules, events))
}

func TestEvaluate_CrossProduct(t *testing.T) {
	rules := []model.AlertRule{
		rule(model.TimingOn, 0, model.UnitDays),
		func() model.AlertRule {
			r := rule(model.TimingOn, 0, model.UnitDays)
			r.ID = "rule-2"
			return r
		}(),
	}
	events := []model.CalendarEvent{
		optionEvent("ev-1", "2025-06-05"),
		optionEvent("ev-2", "2025-06-05"),
	}

	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	triggered := Evaluate(now, rules, events)
	assert.Len(t, triggered, 4)
}

func TestEvaluate_UnreadableEventDate(t *testing.T) {
	rules := []model.AlertRule{rule(model.TimingOn, 0, model.UnitDays)}
	events := []model.CalendarEvent{optionEvent("ev-1", "soon")}

	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	assert.Empty(t, Evaluate(now, rules, events))
}

func TestEvaluate_EmptyInputs(t *testing.T) {
	now := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)

	triggered := Evaluate(now, nil, nil)
	assert.NotNil(t, triggered)
	assert.Empty(t, triggered)
}
