package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"turakBack/internal/fsm"
	"turakBack/internal/models"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCapacityExceeded  = errors.New("listing capacity exceeded")
	ErrVersionConflict   = errors.New("booking was modified concurrently")
	ErrInvalidTransition = fsm.ErrInvalidTransition
)

type BookingRepository struct {
	DB *sql.DB
}

// CreateBooking inserts a pending booking. When a row with the same
// idempotency key already exists the insert is skipped and the original row
// is returned, so a double submit never creates a second booking.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking models.Booking) (models.Booking, error) {
	if booking.IdempotencyKey != "" {
		existing, err := r.getByIdempotencyKey(ctx, booking.TenantID, booking.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrBookingNotFound) {
			return models.Booking{}, err
		}
	}

	query := `
        INSERT INTO bookings (listing_id, tenant_id, check_in, check_out, slots, status, version, idempotency_key, note, total_price, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, 1, NULLIF($7, ''), $8, $9, $10)
        RETURNING id, version
    `
	booking.Status = fsm.StatusPending
	booking.CreatedAt = time.Now()
	err := r.DB.QueryRowContext(ctx, query,
		booking.ListingID, booking.TenantID, booking.CheckIn, booking.CheckOut,
		booking.Slots, booking.Status, booking.IdempotencyKey, booking.Note,
		booking.TotalPrice, booking.CreatedAt,
	).Scan(&booking.ID, &booking.Version)
	if err != nil {
		// Two submits with the same key can both miss the lookup above; the
		// loser of the insert race replays the winner's row.
		if booking.IdempotencyKey != "" && isUniqueViolation(err) {
			return r.getByIdempotencyKey(ctx, booking.TenantID, booking.IdempotencyKey)
		}
		return models.Booking{}, err
	}
	return booking, nil
}

func (r *BookingRepository) getByIdempotencyKey(ctx context.Context, tenantID int, key string) (models.Booking, error) {
	query := `
        SELECT id, listing_id, tenant_id, check_in, check_out, slots, status, version, note, total_price, created_at, updated_at
        FROM bookings
        WHERE tenant_id = $1 AND idempotency_key = $2
    `
	var b models.Booking
	err := r.DB.QueryRowContext(ctx, query, tenantID, key).Scan(
		&b.ID, &b.ListingID, &b.TenantID, &b.CheckIn, &b.CheckOut, &b.Slots,
		&b.Status, &b.Version, &b.Note, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id int) (models.Booking, error) {
	query := `
        SELECT b.id, b.listing_id, l.title, l.user_id, b.tenant_id, u.name, u.surname,
               b.check_in, b.check_out, b.slots, b.status, b.version, b.note, b.total_price,
               b.created_at, b.updated_at
        FROM bookings b
        JOIN listings l ON l.id = b.listing_id
        JOIN users u ON u.id = b.tenant_id
        WHERE b.id = $1
    `
	var b models.Booking
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.ListingID, &b.ListingTitle, &b.LandlordID, &b.TenantID, &b.TenantName, &b.TenantSurname,
		&b.CheckIn, &b.CheckOut, &b.Slots, &b.Status, &b.Version, &b.Note, &b.TotalPrice,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// AcceptBooking flips a pending booking to accepted and consumes listing
// slots in one transaction. The listing row is locked first so two concurrent
// accepts serialize; the capacity check runs against the locked row and the
// status flip is guarded by the version column.
func (r *BookingRepository) AcceptBooking(ctx context.Context, bookingID, version int) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	var listingID, slots int
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT listing_id, slots, status FROM bookings WHERE id = $1`,
		bookingID,
	).Scan(&listingID, &slots, &status)
	if err == sql.ErrNoRows {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}

	var available int
	err = tx.QueryRowContext(ctx,
		`SELECT available_slots FROM listings WHERE id = $1 FOR UPDATE`,
		listingID,
	).Scan(&available)
	if err == sql.ErrNoRows {
		return models.Booking{}, ErrListingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}

	if available < slots {
		return models.Booking{}, ErrCapacityExceeded
	}

	if err := fsm.Transition(ctx, tx, bookingID, status, fsm.StatusAccepted, version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, ErrVersionConflict
		}
		return models.Booking{}, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE listings SET available_slots = available_slots - $1 WHERE id = $2 AND available_slots >= $1`,
		slots, listingID,
	)
	if err != nil {
		return models.Booking{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Booking{}, err
	}
	if affected == 0 {
		return models.Booking{}, ErrCapacityExceeded
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetBookingByID(ctx, bookingID)
}

// RejectBooking flips a pending booking to rejected. No slots were consumed
// yet, so no restore is needed.
func (r *BookingRepository) RejectBooking(ctx context.Context, bookingID, version int) (models.Booking, error) {
	return r.transitionWithoutSlots(ctx, bookingID, version, fsm.StatusRejected)
}

// CancelBooking cancels a booking. Cancelling an accepted booking returns its
// slots to the listing inside the same transaction.
func (r *BookingRepository) CancelBooking(ctx context.Context, bookingID, version int) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	var listingID, slots int
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT listing_id, slots, status FROM bookings WHERE id = $1`,
		bookingID,
	).Scan(&listingID, &slots, &status)
	if err == sql.ErrNoRows {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}

	if err := fsm.Transition(ctx, tx, bookingID, status, fsm.StatusCancelled, version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, ErrVersionConflict
		}
		return models.Booking{}, err
	}

	if status == fsm.StatusAccepted {
		_, err = tx.ExecContext(ctx,
			`UPDATE listings SET available_slots = LEAST(available_slots + $1, total_slots) WHERE id = $2`,
			slots, listingID,
		)
		if err != nil {
			return models.Booking{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetBookingByID(ctx, bookingID)
}

func (r *BookingRepository) transitionWithoutSlots(ctx context.Context, bookingID, version int, to string) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1`, bookingID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}

	if err := fsm.Transition(ctx, tx, bookingID, status, to, version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, ErrVersionConflict
		}
		return models.Booking{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, err
	}
	return r.GetBookingByID(ctx, bookingID)
}

func (r *BookingRepository) GetBookingsByTenant(ctx context.Context, tenantID int, status string, page, limit int) ([]models.Booking, error) {
	return r.listBookings(ctx, `b.tenant_id = $1`, tenantID, status, page, limit)
}

func (r *BookingRepository) GetBookingsByListing(ctx context.Context, listingID int, status string, page, limit int) ([]models.Booking, error) {
	return r.listBookings(ctx, `b.listing_id = $1`, listingID, status, page, limit)
}

func (r *BookingRepository) listBookings(ctx context.Context, cond string, arg int, status string, page, limit int) ([]models.Booking, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	args := []interface{}{arg}
	if status != "" {
		args = append(args, status)
		cond += fmt.Sprintf(" AND b.status = $%d", len(args))
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
        SELECT b.id, b.listing_id, l.title, l.user_id, b.tenant_id, u.name, u.surname,
               b.check_in, b.check_out, b.slots, b.status, b.version, b.note, b.total_price,
               b.created_at, b.updated_at
        FROM bookings b
        JOIN listings l ON l.id = b.listing_id
        JOIN users u ON u.id = b.tenant_id
        WHERE %s
        ORDER BY b.created_at DESC
        LIMIT $%d OFFSET $%d
    `, cond, len(args)-1, len(args))
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.ListingID, &b.ListingTitle, &b.LandlordID, &b.TenantID, &b.TenantName, &b.TenantSurname,
			&b.CheckIn, &b.CheckOut, &b.Slots, &b.Status, &b.Version, &b.Note, &b.TotalPrice,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// ExpirePendingBookings rejects pending bookings created before the cutoff.
// Returns the affected bookings so the caller can notify both sides.
func (r *BookingRepository) ExpirePendingBookings(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	query := `
        UPDATE bookings
        SET status = $1, version = version + 1, updated_at = NOW()
        WHERE status = $2 AND created_at < $3
        RETURNING id, listing_id, tenant_id, check_in, check_out, slots, status, version, total_price, created_at
    `
	rows, err := r.DB.QueryContext(ctx, query, fsm.StatusRejected, fsm.StatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.ListingID, &b.TenantID, &b.CheckIn, &b.CheckOut, &b.Slots,
			&b.Status, &b.Version, &b.TotalPrice, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		expired = append(expired, b)
	}
	return expired, rows.Err()
}
