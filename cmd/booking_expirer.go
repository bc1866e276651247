package main

import (
	"context"
	"log"
	"time"

	"turakBack/internal/services"
)

const (
	bookingExpirerInterval = 1 * time.Hour
	bookingExpirerTimeout  = 1 * time.Minute
	pendingBookingTTL      = 48 * time.Hour
)

// startBookingExpirer rejects pending bookings the landlord ignored for more
// than pendingBookingTTL.
func startBookingExpirer(ctx context.Context, svc *services.BookingService, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(bookingExpirerInterval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, bookingExpirerTimeout)
			expired, err := svc.ExpirePendingBookings(runCtx, time.Now().Add(-pendingBookingTTL))
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("booking expirer: %v", err)
				}
			} else if expired > 0 && infoLog != nil {
				infoLog.Printf("booking expirer: closed %d stale bookings", expired)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
