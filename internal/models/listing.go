package models

import (
	"time"
)

type Listing struct {
	ID      int     `json:"id"`
	Title   string  `json:"title"`
	Address string  `json:"address"`
	CityID  int     `json:"city_id"`
	Price   float64 `json:"price"`
	Deposit float64 `json:"deposit"`
	UserID  int     `json:"user_id"`
	User    struct {
		ID           int     `json:"id"`
		Name         string  `json:"name"`
		Surname      string  `json:"surname"`
		Phone        string  `json:"phone"`
		ReviewRating float64 `json:"review_rating"`
		ReviewsCount int     `json:"reviews_count"`
		AvatarPath   *string `json:"avatar_path,omitempty"`
	} `json:"user"`
	Photos         []ListingPhoto `json:"photos"`
	Amenities      []string       `json:"amenities"`
	Rules          []string       `json:"rules"`
	Description    string         `json:"description"`
	TotalSlots     int            `json:"total_slots"`
	AvailableSlots int            `json:"available_slots"`
	AvgRating      float64        `json:"avg_rating"`
	ReviewsCount   int            `json:"reviews_count"`
	Liked          bool           `json:"liked"`
	Status         string         `json:"status"` // pending, active, archived, rejected
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

type ListingPhoto struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

type ListingFilterRequest struct {
	CityID     int      `json:"city_id,omitempty"`
	PriceFrom  float64  `json:"price_from"`
	PriceTo    float64  `json:"price_to"`
	Amenities  []string `json:"amenities"`
	MinRating  float64  `json:"min_rating"`
	OnlyVacant bool     `json:"only_vacant"`
	Sorting    int      `json:"sorting"` // 1 - by rating, 2 - price desc, 3 - price asc, 4 - newest
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
}

type ListingListResponse struct {
	Listings []Listing `json:"listings"`
	Total    int       `json:"total"`
	MinPrice float64   `json:"min_price"`
	MaxPrice float64   `json:"max_price"`
}

// FeedPage is a keyset-paginated slice of the public feed. NextCursor is the
// id of the last row; an empty cursor means the feed is exhausted.
type FeedPage struct {
	Listings   []Listing `json:"listings"`
	NextCursor int       `json:"next_cursor,omitempty"`
}

type NearbyListing struct {
	ListingID int     `json:"listing_id"`
	DistM     float64 `json:"dist_m"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
