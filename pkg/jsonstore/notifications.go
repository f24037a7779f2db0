package jsonstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/db"
)

const notificationsCollection = "notifications"

// GetNotifications retrieves every notification record, newest first
func (s *Store) GetNotifications(ctx context.Context) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := readCollection[model.Notification](s, notificationsCollection)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(notifications, func(a, b model.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return notifications, nil
}

// InsertNotification appends a new notification record
func (s *Store) InsertNotification(ctx context.Context, notification *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := readCollection[model.Notification](s, notificationsCollection)
	if err != nil {
		return err
	}
	notifications = append(notifications, *notification)
	return writeCollection(s, notificationsCollection, notifications)
}

// MarkNotificationRead adds an admin to a notification's read set
func (s *Store) MarkNotificationRead(ctx context.Context, id, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, err := readCollection[model.Notification](s, notificationsCollection)
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].ID != id {
			continue
		}
		if !slices.Contains(notifications[i].ReadBy, adminID) {
			notifications[i].ReadBy = append(notifications[i].ReadBy, adminID)
		}
		return writeCollection(s, notificationsCollection, notifications)
	}
	return fmt.Errorf("mark notification %s read: %w", id, db.ErrNotFound)
}
