package models

import "time"

type Report struct {
	ID             int       `json:"id"`
	ReporterID     int       `json:"reporter_id"`
	ListingID      *int      `json:"listing_id,omitempty"`
	ReportedUserID *int      `json:"reported_user_id,omitempty"`
	Reason         string    `json:"reason"`
	Text           string    `json:"text"`
	Resolved       bool      `json:"resolved"`
	CreatedAt      time.Time `json:"created_at"`
}
