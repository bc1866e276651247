package models

import (
	"time"
)

type Booking struct {
	ID             int        `json:"id"`
	ListingID      int        `json:"listing_id"`
	ListingTitle   string     `json:"listing_title,omitempty"`
	TenantID       int        `json:"tenant_id"`
	TenantName     string     `json:"tenant_name,omitempty"`
	TenantSurname  string     `json:"tenant_surname,omitempty"`
	LandlordID     int        `json:"landlord_id,omitempty"`
	CheckIn        time.Time  `json:"check_in"`
	CheckOut       time.Time  `json:"check_out"`
	Slots          int        `json:"slots"`
	Status         string     `json:"status"` // pending, accepted, rejected, cancelled
	Version        int        `json:"version"`
	IdempotencyKey string     `json:"idempotency_key,omitempty"`
	Note           string     `json:"note,omitempty"`
	TotalPrice     float64    `json:"total_price"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type CreateBookingRequest struct {
	ListingID      int    `json:"listing_id"`
	CheckIn        string `json:"check_in"`  // YYYY-MM-DD
	CheckOut       string `json:"check_out"` // YYYY-MM-DD
	Slots          int    `json:"slots"`
	Note           string `json:"note"`
	IdempotencyKey string `json:"idempotency_key"`
}

type BookingStatusRequest struct {
	BookingID int `json:"booking_id"`
	Version   int `json:"version"`
}

type BookingQuote struct {
	ListingID  int     `json:"listing_id"`
	Nights     int     `json:"nights"`
	Slots      int     `json:"slots"`
	PerNight   float64 `json:"per_night"`
	Deposit    float64 `json:"deposit"`
	TotalPrice float64 `json:"total_price"`
}
