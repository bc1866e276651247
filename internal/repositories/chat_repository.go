package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"turakBack/internal/models"
)

var ErrChatNotFound = errors.New("chat not found")

type ChatRepository struct {
	DB *sql.DB
}

// FindOrCreateChat returns the chat between two users, creating it when no
// chat exists yet. The pair is stored unordered, the lookup checks both
// directions.
func (r *ChatRepository) FindOrCreateChat(ctx context.Context, user1ID, user2ID int, listingID *int) (int, error) {
	var chatID int
	query := `
        SELECT id
        FROM chats
        WHERE (user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1)
        LIMIT 1
    `
	err := r.DB.QueryRowContext(ctx, query, user1ID, user2ID).Scan(&chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			createQuery := `
                INSERT INTO chats (user1_id, user2_id, listing_id, created_at)
                VALUES ($1, $2, $3, $4)
                RETURNING id
            `
			if err := r.DB.QueryRowContext(ctx, createQuery, user1ID, user2ID, listingID, time.Now()).Scan(&chatID); err != nil {
				return 0, err
			}
			return chatID, nil
		}
		return 0, err
	}
	return chatID, nil
}

func (r *ChatRepository) GetChatByID(ctx context.Context, id int) (models.Chat, error) {
	var chat models.Chat
	query := `SELECT id, user1_id, user2_id, listing_id, created_at FROM chats WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&chat.ID, &chat.User1ID, &chat.User2ID, &chat.ListingID, &chat.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Chat{}, ErrChatNotFound
	}
	if err != nil {
		return models.Chat{}, err
	}
	return chat, nil
}

// GetChatsByUserID builds the inbox: one row per chat with peer info, the
// last message and the unread counter for the requesting user.
func (r *ChatRepository) GetChatsByUserID(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	query := `
        SELECT c.id,
               p.id, p.name, p.surname, p.avatar_path,
               c.listing_id, l.title,
               COALESCE(m.text, ''), m.created_at,
               (SELECT COUNT(*) FROM messages um WHERE um.chat_id = c.id AND um.receiver_id = $1 AND um.read = FALSE)
        FROM chats c
        JOIN users p ON p.id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END
        LEFT JOIN listings l ON l.id = c.listing_id
        LEFT JOIN LATERAL (
            SELECT text, created_at
            FROM messages
            WHERE chat_id = c.id
            ORDER BY created_at DESC
            LIMIT 1
        ) m ON TRUE
        WHERE c.user1_id = $1 OR c.user2_id = $1
        ORDER BY m.created_at DESC NULLS LAST
    `
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []models.ChatSummary
	for rows.Next() {
		var c models.ChatSummary
		if err := rows.Scan(
			&c.ChatID,
			&c.PeerID, &c.PeerName, &c.PeerSurname, &c.PeerAvatarPath,
			&c.ListingID, &c.ListingTitle,
			&c.LastMessage, &c.LastMessageAt,
			&c.UnreadCount,
		); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (r *ChatRepository) DeleteChat(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrChatNotFound
	}
	return nil
}
