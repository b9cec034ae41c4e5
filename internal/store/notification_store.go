package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/google/uuid"
)

type mysqlNotificationStore struct {
	db *sql.DB
}

// NewNotificationStore returns a MySQL-backed NotificationStore.
func NewNotificationStore(db *sql.DB) NotificationStore {
	return &mysqlNotificationStore{db: db}
}

func (s *mysqlNotificationStore) Create(ctx context.Context, n models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO notifications (id, user_id, title, message, is_read, created_at) VALUES (?, ?, ?, ?, 0, ?)",
		n.ID, n.UserID, n.Title, n.Message, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *mysqlNotificationStore) ListUnread(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, title, message, is_read, created_at FROM notifications WHERE user_id = ? AND is_read = 0 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *mysqlNotificationStore) MarkRead(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE notifications SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		var exists int
		if err := s.db.QueryRowContext(ctx, "SELECT 1 FROM notifications WHERE id = ?", id).Scan(&exists); err != nil {
			return ErrNotFound
		}
	}
	return nil
}

func (s *mysqlNotificationStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
