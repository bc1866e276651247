package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"turakBack/internal/models"
)

// recorderConn captures every statement the repositories issue and plays back
// a scripted error (or success) per call, in order. Rows are never produced,
// so scripts end on an error for query paths.
type recorderConn struct {
	queries []string
	args    [][]driver.NamedValue
	script  []error
}

func (c *recorderConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("no prepare") }
func (c *recorderConn) Close() error                        { return nil }
func (c *recorderConn) Begin() (driver.Tx, error)           { return nil, errors.New("no tx") }

func (c *recorderConn) step() error {
	if len(c.script) == 0 {
		return errors.New("recorder script exhausted")
	}
	err := c.script[0]
	c.script = c.script[1:]
	return err
}

func (c *recorderConn) ExecContext(_ context.Context, q string, args []driver.NamedValue) (driver.Result, error) {
	c.queries = append(c.queries, q)
	c.args = append(c.args, args)
	if err := c.step(); err != nil {
		return nil, err
	}
	return driver.RowsAffected(1), nil
}

func (c *recorderConn) QueryContext(_ context.Context, q string, args []driver.NamedValue) (driver.Rows, error) {
	c.queries = append(c.queries, q)
	c.args = append(c.args, args)
	if err := c.step(); err != nil {
		return nil, err
	}
	return nil, errors.New("recorder produces no rows")
}

type recorderConnector struct{ conn *recorderConn }

func (c recorderConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c recorderConnector) Driver() driver.Driver                        { return recorderDriver{} }

type recorderDriver struct{}

func (recorderDriver) Open(string) (driver.Conn, error) { return nil, errors.New("use connector") }

func newRecorderDB(script ...error) (*sql.DB, *recorderConn) {
	conn := &recorderConn{script: script}
	db := sql.OpenDB(recorderConnector{conn: conn})
	db.SetMaxOpenConns(1)
	return db, conn
}

func TestUpdateListingSendsStatusToModeration(t *testing.T) {
	// UPDATE succeeds, the follow-up re-read is cut short.
	db, conn := newRecorderDB(nil, sql.ErrNoRows)
	defer db.Close()
	repo := &ListingRepository{DB: db}

	lat, lon := 43.238949, 76.889709
	_, err := repo.UpdateListing(context.Background(), models.Listing{
		ID:         7,
		Title:      "Room near the park",
		CityID:     2,
		Price:      90000,
		TotalSlots: 3,
		Latitude:   &lat,
		Longitude:  &lon,
		Status:     "pending",
	})
	if !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected re-read to stop at scripted no-rows, got %v", err)
	}
	if len(conn.queries) < 1 {
		t.Fatal("no statement captured")
	}

	q := conn.queries[0]
	if !strings.Contains(q, "status = $13") {
		t.Fatalf("update must write the status column: %s", q)
	}
	if !strings.Contains(q, "GREATEST(0, LEAST(available_slots + ($10 - total_slots), $10))") {
		t.Fatalf("available_slots must stay within [0, total_slots]: %s", q)
	}

	args := conn.args[0]
	if len(args) != 14 {
		t.Fatalf("expected 14 args, got %d", len(args))
	}
	if args[12].Value != "pending" {
		t.Fatalf("expected status arg %q, got %v", "pending", args[12].Value)
	}
}

func TestCreateBookingReplaysOnDuplicateKey(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	// Lookup misses, the insert loses the race, the re-fetch runs.
	db, conn := newRecorderDB(sql.ErrNoRows, dup, sql.ErrNoRows)
	defer db.Close()
	repo := &BookingRepository{DB: db}

	_, err := repo.CreateBooking(context.Background(), models.Booking{
		ListingID:      1,
		TenantID:       5,
		CheckIn:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		Slots:          1,
		IdempotencyKey: "key-1",
	})
	if errors.Is(err, dup) {
		t.Fatal("duplicate key must not surface to the caller")
	}
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected the scripted re-fetch result, got %v", err)
	}

	if len(conn.queries) != 3 {
		t.Fatalf("expected lookup, insert, re-fetch; got %d statements", len(conn.queries))
	}
	if !strings.Contains(conn.queries[2], "idempotency_key") {
		t.Fatalf("expected a re-fetch by idempotency key, got: %s", conn.queries[2])
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("23505 must be recognized")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violations are not unique violations")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Error("plain errors are not unique violations")
	}
}
