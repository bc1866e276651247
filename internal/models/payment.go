package models

import "time"

const (
	PaymentStatusCreated  = "created"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

type Payment struct {
	ID         int        `json:"id"`
	BookingID  int        `json:"booking_id"`
	UserID     int        `json:"user_id"`
	InvoiceID  string     `json:"invoice_id"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	PaymentURL string     `json:"payment_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}
