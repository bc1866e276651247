package models

import "time"

type Chat struct {
	ID        int       `json:"id"`
	User1ID   int       `json:"user1_id"`
	User2ID   int       `json:"user2_id"`
	ListingID *int      `json:"listing_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSummary is the inbox row: peer info plus the last message and the
// number of messages the requesting user has not read yet.
type ChatSummary struct {
	ChatID         int        `json:"chat_id"`
	PeerID         int        `json:"peer_id"`
	PeerName       string     `json:"peer_name"`
	PeerSurname    string     `json:"peer_surname"`
	PeerAvatarPath *string    `json:"peer_avatar_path,omitempty"`
	ListingID      *int       `json:"listing_id,omitempty"`
	ListingTitle   *string    `json:"listing_title,omitempty"`
	LastMessage    string     `json:"last_message"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
	UnreadCount    int        `json:"unread_count"`
}
