package postgres

import (
	"context"
	"fmt"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/db"
)

// GetNotifications retrieves every notification record, newest first
func (d *DB) GetNotifications(ctx context.Context) ([]model.Notification, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, rule_id, rule_name, event_id, model_id, message, created_at, read_by
		FROM notification
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.RuleID, &n.RuleName, &n.EventID, &n.ModelID, &n.Message, &n.CreatedAt, &n.ReadBy); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

// InsertNotification inserts a new notification record
func (d *DB) InsertNotification(ctx context.Context, n *model.Notification) error {
	readBy := n.ReadBy
	if readBy == nil {
		readBy = []string{}
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO notification (id, rule_id, rule_name, event_id, model_id, message, created_at, read_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, n.RuleID, n.RuleName, n.EventID, n.ModelID, n.Message, n.CreatedAt, readBy)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// MarkNotificationRead adds an admin to a notification's read set
func (d *DB) MarkNotificationRead(ctx context.Context, id, adminID string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE notification
		SET read_by = array_append(read_by, $2)
		WHERE id = $1 AND NOT ($2 = ANY(read_by))
	`, id, adminID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either already read by this admin or missing; distinguish the two
		var exists bool
		if err := d.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM notification WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check notification: %w", err)
		}
		if !exists {
			return fmt.Errorf("mark notification %s read: %w", id, db.ErrNotFound)
		}
	}
	return nil
}
