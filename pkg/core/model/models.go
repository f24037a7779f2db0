package model

import "time"

// EventType classifies a calendar event
type EventType string

const (
	EventOption       EventType = "option"
	EventOut          EventType = "out"
	EventJob          EventType = "job"
	EventContract     EventType = "contract"
	EventCasting      EventType = "casting"
	EventFitting      EventType = "fitting"
	EventTravel       EventType = "travel"
	EventAvailability EventType = "availability"
)

func (e EventType) IsValid() bool {
	switch e {
	case EventOption, EventOut, EventJob, EventContract,
		EventCasting, EventFitting, EventTravel, EventAvailability:
		return true
	}
	return false
}

// AvailabilityStatus qualifies availability-type events
type AvailabilityStatus string

const (
	Available    AvailabilityStatus = "available"
	NotAvailable AvailabilityStatus = "not_available"
	Tentative    AvailabilityStatus = "tentative"
)

func (s AvailabilityStatus) IsValid() bool {
	return s == Available || s == NotAvailable || s == Tentative
}

// CalendarEvent represents a scheduled occurrence tied to exactly one model
type CalendarEvent struct {
	ID        string    `json:"id"`
	ModelID   string    `json:"modelId"`
	EventType EventType `json:"eventType"`

	StartDate string `json:"startDate"`           // Date format "2006-01-02"
	EndDate   string `json:"endDate,omitempty"`   // Empty means single-day event
	StartTime string `json:"startTime,omitempty"` // Wall clock "HH:MM", no timezone
	EndTime   string `json:"endTime,omitempty"`

	Title      string `json:"title,omitempty"`
	ClientName string `json:"clientName,omitempty"`
	Location   string `json:"location,omitempty"`
	CallTime   string `json:"callTime,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Notes      string `json:"notes,omitempty"`

	AvailabilityStatus AvailabilityStatus `json:"availabilityStatus,omitempty"`

	// Option holds only
	OptionExpiry   string `json:"optionExpiry,omitempty"`
	OptionPriority int    `json:"optionPriority,omitempty"` // Ordinal 1..5, 0 when unset
	OptionClient   string `json:"optionClient,omitempty"`

	// RRULE string for repeating events (e.g. weekly availability blocks)
	Recurrence string `json:"recurrence,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// EffectiveEndDate returns the event's end date, falling back to the start
// date for single-day events
func (e CalendarEvent) EffectiveEndDate() string {
	if e.EndDate != "" {
		return e.EndDate
	}
	return e.StartDate
}

// HasTimeOfDay reports whether the event carries full time-of-day bounds
func (e CalendarEvent) HasTimeOfDay() bool {
	return e.StartTime != "" && e.EndTime != ""
}

// TriggerTiming positions an alert trigger relative to the event date
type TriggerTiming string

const (
	TimingBefore TriggerTiming = "before"
	TimingOn     TriggerTiming = "on"
	TimingAfter  TriggerTiming = "after"
)

func (t TriggerTiming) IsValid() bool {
	return t == TimingBefore || t == TimingOn || t == TimingAfter
}

// TriggerUnit is the unit of an alert trigger offset
type TriggerUnit string

const (
	UnitDays  TriggerUnit = "days"
	UnitHours TriggerUnit = "hours"
)

func (u TriggerUnit) IsValid() bool {
	return u == UnitDays || u == UnitHours
}

// AlertChannel is a delivery channel for triggered alerts
type AlertChannel string

const (
	ChannelEmail AlertChannel = "email"
	ChannelSlack AlertChannel = "slack"
)

func (c AlertChannel) IsValid() bool {
	return c == ChannelEmail || c == ChannelSlack
}

// AlertTrigger defines when a rule fires relative to a matching event
type AlertTrigger struct {
	EventType EventType     `json:"eventType"`
	Timing    TriggerTiming `json:"timing"`
	Value     int           `json:"value"` // Non-negative offset, 0 for "on"
	Unit      TriggerUnit   `json:"unit"`
}

// AlertRule is a standing subscription that fires when an event of a given
// type approaches or passes a time offset
type AlertRule struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Enabled bool         `json:"enabled"`
	Trigger AlertTrigger `json:"trigger"`

	Channels        []AlertChannel `json:"channels"`
	EmailRecipients string         `json:"emailRecipients,omitempty"` // Comma-separated, required iff email channel
	SlackWebhookURL string         `json:"slackWebhookUrl,omitempty"` // Required iff slack channel

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// HasChannel reports whether the rule delivers to the given channel
func (r AlertRule) HasChannel(c AlertChannel) bool {
	for _, ch := range r.Channels {
		if ch == c {
			return true
		}
	}
	return false
}

// Notification records that a rule fired for an event, with per-admin read state
type Notification struct {
	ID        string    `json:"id"`
	RuleID    string    `json:"ruleId"`
	RuleName  string    `json:"ruleName"`
	EventID   string    `json:"eventId"`
	ModelID   string    `json:"modelId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ReadBy    []string  `json:"readBy,omitempty"` // Admin IDs that have seen it
}

// ProfileStatus is the lifecycle state of a model profile
type ProfileStatus string

const (
	ProfileActive   ProfileStatus = "active"
	ProfilePending  ProfileStatus = "pending" // Awaiting review after public submission
	ProfileArchived ProfileStatus = "archived"
)

func (s ProfileStatus) IsValid() bool {
	return s == ProfileActive || s == ProfilePending || s == ProfileArchived
}

// Profile represents a model on the agency board
type Profile struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Division  string        `json:"division"` // Board category, e.g. Women, Men
	Status    ProfileStatus `json:"status"`

	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	Instagram string `json:"instagram,omitempty"`

	HeightCM  int    `json:"heightCm,omitempty"`
	Bust      string `json:"bust,omitempty"`
	Waist     string `json:"waist,omitempty"`
	Hips      string `json:"hips,omitempty"`
	ShoeSize  string `json:"shoeSize,omitempty"`
	HairColor string `json:"hairColor,omitempty"`
	EyeColor  string `json:"eyeColor,omitempty"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName returns the profile's display name
func (p Profile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Admin is a back-office user account
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"` // bcrypt
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
