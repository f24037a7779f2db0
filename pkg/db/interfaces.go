package db

import (
	"context"
	"errors"

	"github.com/altamoda/agencyboard/pkg/core/model"
)

// ErrNotFound is returned by lookups for records that do not exist
var ErrNotFound = errors.New("record not found")

// EventStore defines the calendar event database operations
type EventStore interface {
	GetEvent(ctx context.Context, id string) (*model.CalendarEvent, error)
	GetEventsForModel(ctx context.Context, modelID string) ([]model.CalendarEvent, error)
	GetEventsInRange(ctx context.Context, startDate, endDate string) ([]model.CalendarEvent, error)
	InsertEvent(ctx context.Context, event *model.CalendarEvent) error
	UpdateEvent(ctx context.Context, event *model.CalendarEvent) error
	DeleteEvent(ctx context.Context, id string) error
}

// RuleStore defines the alert rule database operations
type RuleStore interface {
	GetRule(ctx context.Context, id string) (*model.AlertRule, error)
	GetRules(ctx context.Context) ([]model.AlertRule, error)
	GetEnabledRules(ctx context.Context) ([]model.AlertRule, error)
	InsertRule(ctx context.Context, rule *model.AlertRule) error
	UpdateRule(ctx context.Context, rule *model.AlertRule) error
	DeleteRule(ctx context.Context, id string) error
}

// NotificationStore defines the notification database operations
type NotificationStore interface {
	GetNotifications(ctx context.Context) ([]model.Notification, error)
	InsertNotification(ctx context.Context, notification *model.Notification) error
	MarkNotificationRead(ctx context.Context, id, adminID string) error
}

// ProfileStore defines the model profile database operations
type ProfileStore interface {
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	GetProfiles(ctx context.Context) ([]model.Profile, error)
	InsertProfile(ctx context.Context, profile *model.Profile) error
	UpdateProfile(ctx context.Context, profile *model.Profile) error
	DeleteProfile(ctx context.Context, id string) error
}

// AdminStore defines the admin account database operations
type AdminStore interface {
	GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	InsertAdmin(ctx context.Context, admin *model.Admin) error
}

// Store aggregates every collection the application persists
type Store interface {
	EventStore
	RuleStore
	NotificationStore
	ProfileStore
	AdminStore
}
