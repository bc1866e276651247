package fsm

import (
	"context"
	"database/sql"
	"errors"
)

// Status constants used by the booking state machine.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusAccepted:  {},
		StatusRejected:  {},
		StatusCancelled: {},
	},
	StatusAccepted: {
		StatusCancelled: {},
	},
	StatusRejected:  {},
	StatusCancelled: {},
}

var ErrInvalidTransition = errors.New("invalid booking status transition")

// CanTransition reports whether from -> to is an allowed booking transition.
func CanTransition(from, to string) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// IsTerminal reports whether the status has no outgoing transitions.
func IsTerminal(status string) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}

// Transition flips a booking status inside the given transaction, guarded by
// the optimistic-lock version column. Returns ErrInvalidTransition when the
// current status does not allow the move, sql.ErrNoRows when the version is
// stale.
func Transition(ctx context.Context, tx *sql.Tx, bookingID int, from, to string, version int) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	res, err := tx.ExecContext(ctx, `
        UPDATE bookings
        SET status = $1, version = version + 1, updated_at = NOW()
        WHERE id = $2 AND status = $3 AND version = $4`,
		to, bookingID, from, version,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
