package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/scheduling"
	"github.com/altamoda/agencyboard/pkg/db"
)

// mockStore implements the service store interfaces over in-memory slices
type mockStore struct {
	events    []model.CalendarEvent
	eventsErr error

	profiles    []model.Profile
	profilesErr error

	rules    []model.AlertRule
	rulesErr error

	notifications []*model.Notification
	notifyErr     error

	insertedEvents []*model.CalendarEvent
	updatedEvents  []*model.CalendarEvent
	deletedEvents  []string

	insertedRules []*model.AlertRule
	updatedRules  []*model.AlertRule
	deletedRules  []string

	insertedProfiles []*model.Profile
	updatedProfiles  []*model.Profile
	deletedProfiles  []string
}

func (m *mockStore) GetEventsForModel(ctx context.Context, modelID string) ([]model.CalendarEvent, error) {
	if m.eventsErr != nil {
		return nil, m.eventsErr
	}
	out := []model.CalendarEvent{}
	for _, ev := range m.events {
		if ev.ModelID == modelID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockStore) GetEvent(ctx context.Context, id string) (*model.CalendarEvent, error) {
	for _, ev := range m.events {
		if ev.ID == id {
			found := ev
			return &found, nil
		}
	}
	return nil, fmt.Errorf("event %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) GetEventsInRange(ctx context.Context, startDate, endDate string) ([]model.CalendarEvent, error) {
	if m.eventsErr != nil {
		return nil, m.eventsErr
	}
	out := []model.CalendarEvent{}
	for _, ev := range m.events {
		if ev.StartDate <= endDate && ev.EffectiveEndDate() >= startDate {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockStore) InsertEvent(ctx context.Context, event *model.CalendarEvent) error {
	m.insertedEvents = append(m.insertedEvents, event)
	return nil
}

func (m *mockStore) UpdateEvent(ctx context.Context, event *model.CalendarEvent) error {
	m.updatedEvents = append(m.updatedEvents, event)
	return nil
}

func (m *mockStore) DeleteEvent(ctx context.Context, id string) error {
	m.deletedEvents = append(m.deletedEvents, id)
	return nil
}

func (m *mockStore) GetEnabledRules(ctx context.Context) ([]model.AlertRule, error) {
	if m.rulesErr != nil {
		return nil, m.rulesErr
	}
	out := []model.AlertRule{}
	for _, r := range m.rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) GetRule(ctx context.Context, id string) (*model.AlertRule, error) {
	for _, r := range m.rules {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, fmt.Errorf("rule %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) InsertRule(ctx context.Context, rule *model.AlertRule) error {
	m.insertedRules = append(m.insertedRules, rule)
	return nil
}

func (m *mockStore) UpdateRule(ctx context.Context, rule *model.AlertRule) error {
	m.updatedRules = append(m.updatedRules, rule)
	return nil
}

func (m *mockStore) DeleteRule(ctx context.Context, id string) error {
	m.deletedRules = append(m.deletedRules, id)
	return nil
}

func (m *mockStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	if m.profilesErr != nil {
		return nil, m.profilesErr
	}
	for _, p := range m.profiles {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("profile %s: %w", id, db.ErrNotFound)
}

func (m *mockStore) GetProfiles(ctx context.Context) ([]model.Profile, error) {
	if m.profilesErr != nil {
		return nil, m.profilesErr
	}
	return m.profiles, nil
}

func (m *mockStore) InsertProfile(ctx context.Context, profile *model.Profile) error {
	m.insertedProfiles = append(m.insertedProfiles, profile)
	return nil
}

func (m *mockStore) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	m.updatedProfiles = append(m.updatedProfiles, profile)
	return nil
}

func (m *mockStore) DeleteProfile(ctx context.Context, id string) error {
	m.deletedProfiles = append(m.deletedProfiles, id)
	return nil
}

func (m *mockStore) InsertNotification(ctx context.Context, notification *model.Notification) error {
	if m.notifyErr != nil {
		return m.notifyErr
	}
	m.notifications = append(m.notifications, notification)
	return nil
}

func TestCheckConflicts_RequiresModelID(t *testing.T) {
	_, err := CheckConflicts(context.Background(), &mockStore{}, zap.NewNop(), CheckConflictsInput{
		StartDate: "2025-06-05",
	})
	require.Error(t, err)

	var invalid *scheduling.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "modelId", invalid.Field)
}

func TestCheckConflicts_InvalidDate(t *testing.T) {
	_, err := CheckConflicts(context.Background(), &mockStore{}, zap.NewNop(), CheckConflictsInput{
		ModelID:   "model-1",
		StartDate: "june 5th",
	})

	var invalid *scheduling.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "startDate", invalid.Field)
}

func TestCheckConflicts_StoreErrorPropagates(t *testing.T) {
	mock := &mockStore{eventsErr: fmt.Errorf("connection refused")}

	_, err := CheckConflicts(context.Background(), mock, zap.NewNop(), CheckConflictsInput{
		ModelID:   "model-1",
		StartDate: "2025-06-05",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}

func TestCheckConflicts_EmptyCalendar(t *testing.T) {
	conflicts, err := CheckConflicts(context.Background(), &mockStore{}, zap.NewNop(), CheckConflictsInput{
		ModelID:   "model-1",
		StartDate: "2025-06-05",
	})
	require.NoError(t, err)
	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)
}

func TestCheckConflicts_FindsOverlaps(t *testing.T) {
	mock := &mockStore{
		events: []model.CalendarEvent{
			{ID: "job", ModelID: "model-1", EventType: model.EventJob, StartDate: "2025-06-05", StartTime: "10:00", EndTime: "12:00"},
			{ID: "other-model", ModelID: "model-2", EventType: model.EventJob, StartDate: "2025-06-05"},
		},
	}

	conflicts, err := CheckConflicts(context.Background(), mock, zap.NewNop(), CheckConflictsInput{
		ModelID:   "model-1",
		StartDate: "2025-06-05",
		StartTime: "11:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "job", conflicts[0].ID)

	conflicts, err = CheckConflicts(context.Background(), mock, zap.NewNop(), CheckConflictsInput{
		ModelID:   "model-1",
		StartDate: "2025-06-05",
		StartTime: "12:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCheckConflicts_ExpandsRecurrence(t *testing.T) {
	// Weekly availability block starting Monday June 2
	mock := &mockStore{
		events: []model.CalendarEvent{
			{
				ID:         "weekly",
				ModelID:    "model-1",
				EventType:  model.EventAvailability,
				StartDate:  "2025-06-02",
				Recurrence: "FREQ=WEEKLY",
			},
		},
	}

	// Two weeks later, same weekday
	conflicts, err := CheckConflicts(context.Background(), mock, zap.NewNop(), CheckConflictsInput{
		ModelID:   "model-1",
		StartDate: "2025-06-16",
	})
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "2025-06-16", conflicts[0].StartDate)

	// The day after has no occurrence
	conflicts, err = CheckConflicts(context.Background(), mock, zap.NewNop(), CheckConflictsInput{
		ModelID:   "model-1",
		StartDate: "2025-06-17",
	})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}
