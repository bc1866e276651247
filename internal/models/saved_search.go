package models

import "time"

// SavedSearch keeps a named filter so the matcher worker can notify the owner
// when a freshly activated listing fits it. Filter is stored as JSON.
type SavedSearch struct {
	ID        int                  `json:"id"`
	UserID    int                  `json:"user_id"`
	Name      string               `json:"name"`
	Filter    ListingFilterRequest `json:"filter"`
	CreatedAt time.Time            `json:"created_at"`
}
