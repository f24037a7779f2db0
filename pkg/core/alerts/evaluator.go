package alerts

import (
	"time"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/scheduling"
)

// LookaheadDays is how far ahead of "now" the evaluator considers events
const LookaheadDays = 30

// Trigger is a (rule, event) pair whose condition is currently satisfied
type Trigger struct {
	Rule  model.AlertRule
	Event model.CalendarEvent
}

// Evaluate scans every enabled rule against every event and returns the
// pairs whose trigger condition holds at "now".
//
// A condition is detected only within a bounded window (24h for day offsets,
// 1h for hour offsets) after it becomes true. An evaluator that is not
// invoked during that window silently misses the alert: this is a polling
// detector, not a durable scheduler, and repeated calls inside the same
// window re-report the same pairs. Delivery dedup belongs to the caller.
func Evaluate(now time.Time, rules []model.AlertRule, events []model.CalendarEvent) []Trigger {
	triggered := []Trigger{}

	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		for _, ev := range events {
			if ev.EventType != rule.Trigger.EventType {
				continue
			}
			if shouldFire(now, rule.Trigger, ev) {
				triggered = append(triggered, Trigger{Rule: rule, Event: ev})
			}
		}
	}

	return triggered
}

// shouldFire decides whether a single rule trigger holds for a single event
func shouldFire(now time.Time, trigger model.AlertTrigger, ev model.CalendarEvent) bool {
	startDate, err := scheduling.ParseDate("event.startDate", ev.StartDate)
	if err != nil {
		return false
	}
	eventDate := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, now.Location())

	triggerTime := triggerTimeFor(trigger, eventDate)

	threshold := time.Hour
	if trigger.Unit == model.UnitDays {
		threshold = 24 * time.Hour
	}

	if now.Before(triggerTime) {
		return false
	}
	return now.Sub(triggerTime) <= threshold
}

// triggerTimeFor computes the instant at which the trigger condition first
// becomes true
func triggerTimeFor(trigger model.AlertTrigger, eventDate time.Time) time.Time {
	if trigger.Timing == model.TimingOn {
		return eventDate
	}

	offset := time.Duration(trigger.Value) * time.Hour
	if trigger.Unit == model.UnitDays {
		offset = time.Duration(trigger.Value) * 24 * time.Hour
	}

	if trigger.Timing == model.TimingBefore {
		return eventDate.Add(-offset)
	}
	return eventDate.Add(offset)
}
