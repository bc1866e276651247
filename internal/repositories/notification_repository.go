package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"turakBack/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository struct {
	DB *sql.DB
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	query := `
        INSERT INTO notifications (user_id, type, title, body, link, read, created_at)
        VALUES ($1, $2, $3, $4, $5, FALSE, $6)
        RETURNING id
    `
	n.CreatedAt = time.Now()
	err := r.DB.QueryRowContext(ctx, query,
		n.UserID, n.Type, n.Title, n.Body, n.Link, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

func (r *NotificationRepository) GetNotificationsByUser(ctx context.Context, userID, page, limit int) ([]models.Notification, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := `
        SELECT id, user_id, type, title, body, link, read, created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`,
		userID,
	)
	return err
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`,
		userID,
	).Scan(&count)
	return count, err
}
