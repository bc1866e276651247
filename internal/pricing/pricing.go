package pricing

import (
	"math"
	"time"
)

// Nights returns the number of nights between check-in and check-out dates.
// Same-day and inverted ranges count as zero.
func Nights(checkIn, checkOut time.Time) int {
	in := checkIn.Truncate(24 * time.Hour)
	out := checkOut.Truncate(24 * time.Hour)
	if !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// Total calculates the booking price: nights x per-night price x slots,
// rounded to whole currency units. Deposit is charged once, not per slot.
func Total(nights, slots int, perNight, deposit float64) float64 {
	if nights < 0 {
		nights = 0
	}
	if slots < 1 {
		slots = 1
	}
	rent := float64(nights) * perNight * float64(slots)
	return math.Round(rent + deposit)
}
