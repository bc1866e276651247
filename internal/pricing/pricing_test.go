package pricing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	if n := Nights(date(2025, 3, 1), date(2025, 3, 5)); n != 4 {
		t.Fatalf("expected 4 nights, got %d", n)
	}
	if n := Nights(date(2025, 3, 1), date(2025, 3, 1)); n != 0 {
		t.Fatalf("same day must be 0 nights, got %d", n)
	}
	if n := Nights(date(2025, 3, 5), date(2025, 3, 1)); n != 0 {
		t.Fatalf("inverted range must be 0 nights, got %d", n)
	}
	// month boundary
	if n := Nights(date(2025, 1, 30), date(2025, 2, 2)); n != 3 {
		t.Fatalf("expected 3 nights across month boundary, got %d", n)
	}
}

func TestTotal(t *testing.T) {
	if got := Total(4, 1, 15000, 30000); got != 90000 {
		t.Fatalf("expected 90000, got %v", got)
	}
	if got := Total(2, 3, 10000, 0); got != 60000 {
		t.Fatalf("expected 60000, got %v", got)
	}
	// zero slots fall back to one occupant
	if got := Total(1, 0, 5000, 0); got != 5000 {
		t.Fatalf("expected 5000, got %v", got)
	}
	if got := Total(-1, 1, 5000, 1000); got != 1000 {
		t.Fatalf("negative nights charge deposit only, got %v", got)
	}
	// fractional per-night prices round to whole units
	if got := Total(3, 1, 3333.33, 0); got != 10000 {
		t.Fatalf("expected 10000, got %v", got)
	}
}
