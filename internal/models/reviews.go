package models

import "time"

type Review struct {
	ID          int        `json:"id"`
	ListingID   int        `json:"listing_id"`
	UserID      int        `json:"user_id"`
	UserName    string     `json:"user_name,omitempty"`
	UserSurname string     `json:"user_surname,omitempty"`
	UserAvatar  *string    `json:"user_avatar_path,omitempty"`
	Rating      float64    `json:"rating"`
	Text        string     `json:"text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ReviewListResponse struct {
	Reviews   []Review `json:"reviews"`
	AvgRating float64  `json:"avg_rating"`
	Total     int      `json:"total"`
}
