package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"turakBack/internal/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository struct {
	DB *sql.DB
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	query := `
        INSERT INTO payments (booking_id, user_id, invoice_id, amount, status, payment_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	p.CreatedAt = time.Now()
	err := r.DB.QueryRowContext(ctx, query,
		p.BookingID, p.UserID, p.InvoiceID, p.Amount, p.Status, p.PaymentURL, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (r *PaymentRepository) GetPaymentByInvoiceID(ctx context.Context, invoiceID string) (models.Payment, error) {
	var p models.Payment
	query := `
        SELECT id, booking_id, user_id, invoice_id, amount, status, payment_url, created_at, paid_at
        FROM payments
        WHERE invoice_id = $1
    `
	err := r.DB.QueryRowContext(ctx, query, invoiceID).Scan(
		&p.ID, &p.BookingID, &p.UserID, &p.InvoiceID, &p.Amount, &p.Status, &p.PaymentURL, &p.CreatedAt, &p.PaidAt,
	)
	if err == sql.ErrNoRows {
		return models.Payment{}, ErrPaymentNotFound
	}
	if err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (r *PaymentRepository) GetPaymentsByUser(ctx context.Context, userID int) ([]models.Payment, error) {
	query := `
        SELECT id, booking_id, user_id, invoice_id, amount, status, payment_url, created_at, paid_at
        FROM payments
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.BookingID, &p.UserID, &p.InvoiceID, &p.Amount, &p.Status, &p.PaymentURL, &p.CreatedAt, &p.PaidAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// SetStatus records a provider callback. Paid transitions also stamp paid_at.
func (r *PaymentRepository) SetStatus(ctx context.Context, invoiceID, status string) error {
	var paidAt interface{}
	if status == models.PaymentStatusPaid {
		paidAt = time.Now()
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE payments SET status = $1, paid_at = COALESCE($2, paid_at) WHERE invoice_id = $3`,
		status, paidAt, invoiceID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
