package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"turakBack/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository struct {
	DB *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	query := `
        INSERT INTO messages (chat_id, sender_id, receiver_id, text, read, created_at)
        VALUES ($1, $2, $3, $4, FALSE, $5)
        RETURNING id
    `
	message.CreatedAt = time.Now()
	err := r.DB.QueryRowContext(ctx, query,
		message.ChatID, message.SenderID, message.ReceiverID, message.Text, message.CreatedAt,
	).Scan(&message.ID)
	if err != nil {
		return models.Message{}, err
	}
	return message, nil
}

func (r *MessageRepository) GetMessagesForChat(ctx context.Context, chatID, page, pageSize int) ([]models.Message, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	query := `
        SELECT id, chat_id, sender_id, receiver_id, text, read, created_at
        FROM messages
        WHERE chat_id = $1
        ORDER BY created_at ASC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.DB.QueryContext(ctx, query, chatID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) GetMessageByID(ctx context.Context, id int) (models.Message, error) {
	var m models.Message
	query := `SELECT id, chat_id, sender_id, receiver_id, text, read, created_at FROM messages WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.ChatID, &m.SenderID, &m.ReceiverID, &m.Text, &m.Read, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Message{}, ErrMessageNotFound
	}
	if err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// MarkChatRead marks every message addressed to userID in the chat as read.
func (r *MessageRepository) MarkChatRead(ctx context.Context, chatID, userID int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE messages SET read = TRUE WHERE chat_id = $1 AND receiver_id = $2 AND read = FALSE`,
		chatID, userID,
	)
	return err
}

func (r *MessageRepository) UnreadCount(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND read = FALSE`,
		userID,
	).Scan(&count)
	return count, err
}

func (r *MessageRepository) DeleteMessage(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
