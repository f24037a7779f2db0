package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEvents_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Absent collection reads as empty
	events, err := store.GetEventsForModel(ctx, "model-1")
	require.NoError(t, err)
	assert.Empty(t, events)

	ev := &model.CalendarEvent{
		ID:        "ev-1",
		ModelID:   "model-1",
		EventType: model.EventJob,
		StartDate: "2025-06-05",
		StartTime: "10:00",
		EndTime:   "18:00",
		Title:     "Lookbook shoot",
	}
	require.NoError(t, store.InsertEvent(ctx, ev))

	loaded, err := store.GetEvent(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, ev, loaded)

	loaded.Title = "Rescheduled shoot"
	require.NoError(t, store.UpdateEvent(ctx, loaded))

	events, err = store.GetEventsForModel(ctx, "model-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Rescheduled shoot", events[0].Title)

	require.NoError(t, store.DeleteEvent(ctx, "ev-1"))
	_, err = store.GetEvent(ctx, "ev-1")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestEvents_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetEvent(ctx, "ghost")
	assert.ErrorIs(t, err, db.ErrNotFound)

	err = store.UpdateEvent(ctx, &model.CalendarEvent{ID: "ghost"})
	assert.ErrorIs(t, err, db.ErrNotFound)

	err = store.DeleteEvent(ctx, "ghost")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestEvents_RangeQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	insert := func(id, startDate, endDate string) {
		require.NoError(t, store.InsertEvent(ctx, &model.CalendarEvent{
			ID:        id,
			ModelID:   "model-1",
			EventType: model.EventJob,
			StartDate: startDate,
			EndDate:   endDate,
		}))
	}
	insert("before", "2025-05-01", "")
	insert("spanning", "2025-05-30", "2025-06-02")
	insert("inside", "2025-06-10", "")
	insert("after", "2025-07-01", "")

	events, err := store.GetEventsInRange(ctx, "2025-06-01", "2025-06-30")
	require.NoError(t, err)

	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, []string{"spanning", "inside"}, ids)
}

func TestRules_EnabledFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertRule(ctx, &model.AlertRule{ID: "on", Name: "on", Enabled: true}))
	require.NoError(t, store.InsertRule(ctx, &model.AlertRule{ID: "off", Name: "off", Enabled: false}))

	enabled, err := store.GetEnabledRules(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "on", enabled[0].ID)

	all, err := store.GetRules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNotifications_NewestFirstAndReadState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := &model.Notification{ID: "n-1", Message: "older", CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	newer := &model.Notification{ID: "n-2", Message: "newer", CreatedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, store.InsertNotification(ctx, older))
	require.NoError(t, store.InsertNotification(ctx, newer))

	notifications, err := store.GetNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "n-2", notifications[0].ID)

	require.NoError(t, store.MarkNotificationRead(ctx, "n-1", "admin-1"))
	// Marking twice does not duplicate the read entry
	require.NoError(t, store.MarkNotificationRead(ctx, "n-1", "admin-1"))

	notifications, err = store.GetNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin-1"}, notifications[1].ReadBy)

	err = store.MarkNotificationRead(ctx, "ghost", "admin-1")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestProfilesAndAdmins_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile := &model.Profile{ID: "model-1", FirstName: "Maya", LastName: "Lund", Division: "women", Status: model.ProfileActive}
	require.NoError(t, store.InsertProfile(ctx, profile))

	loaded, err := store.GetProfile(ctx, "model-1")
	require.NoError(t, err)
	assert.Equal(t, "Maya", loaded.FirstName)

	loaded.Division = "new faces"
	require.NoError(t, store.UpdateProfile(ctx, loaded))

	profiles, err := store.GetProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "new faces", profiles[0].Division)

	require.NoError(t, store.DeleteProfile(ctx, "model-1"))
	_, err = store.GetProfile(ctx, "model-1")
	assert.ErrorIs(t, err, db.ErrNotFound)

	admin := &model.Admin{ID: "admin-1", Username: "director", PasswordHash: "hash"}
	require.NoError(t, store.InsertAdmin(ctx, admin))

	found, err := store.GetAdminByUsername(ctx, "director")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", found.ID)

	_, err = store.GetAdminByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.InsertEvent(ctx, &model.CalendarEvent{
		ID:        "ev-1",
		ModelID:   "model-1",
		EventType: model.EventJob,
		StartDate: "2025-06-05",
	}))

	reopened, err := NewStore(dir)
	require.NoError(t, err)

	loaded, err := reopened.GetEvent(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "model-1", loaded.ModelID)
}
