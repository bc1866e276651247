package models

import "time"

const (
	NotificationTypeBooking    = "booking"
	NotificationTypeMessage    = "message"
	NotificationTypeModeration = "moderation"
	NotificationTypeSearch     = "saved_search"
	NotificationTypePayment    = "payment"
)

type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
