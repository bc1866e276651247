package services

import (
	"context"
	"fmt"
	"time"

	"turakBack/internal/models"
	"turakBack/internal/pricing"
	"turakBack/internal/repositories"
)

const bookingDateLayout = "2006-01-02"

type BookingService struct {
	BookingRepo  *repositories.BookingRepository
	ListingRepo  ListingGetter
	Notification *NotificationService
}

func parseBookingDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(bookingDateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	out, err := time.Parse(bookingDateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return in, out, nil
}

// Quote prices a stay without creating anything.
func (s *BookingService) Quote(ctx context.Context, req models.CreateBookingRequest) (models.BookingQuote, error) {
	if req.Slots < 1 {
		return models.BookingQuote{}, ErrInvalidSlots
	}
	in, out, err := parseBookingDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return models.BookingQuote{}, err
	}

	listing, err := s.ListingRepo.GetListingByID(ctx, req.ListingID, 0)
	if err != nil {
		return models.BookingQuote{}, err
	}
	if listing.Status != "active" {
		return models.BookingQuote{}, ErrListingNotActive
	}

	nights := pricing.Nights(in, out)
	return models.BookingQuote{
		ListingID:  listing.ID,
		Nights:     nights,
		Slots:      req.Slots,
		PerNight:   listing.Price,
		Deposit:    listing.Deposit,
		TotalPrice: pricing.Total(nights, req.Slots, listing.Price, listing.Deposit),
	}, nil
}

// CreateBooking places a pending request. Slots are not reserved until the
// landlord accepts. A repeated idempotency key returns the original booking.
func (s *BookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest, tenantID int) (models.Booking, error) {
	if req.Slots < 1 {
		return models.Booking{}, ErrInvalidSlots
	}
	in, out, err := parseBookingDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return models.Booking{}, err
	}

	listing, err := s.ListingRepo.GetListingByID(ctx, req.ListingID, 0)
	if err != nil {
		return models.Booking{}, err
	}
	if listing.Status != "active" {
		return models.Booking{}, ErrListingNotActive
	}
	if listing.UserID == tenantID {
		return models.Booking{}, ErrOwnListing
	}
	if req.Slots > listing.TotalSlots {
		return models.Booking{}, repositories.ErrCapacityExceeded
	}

	nights := pricing.Nights(in, out)
	booking := models.Booking{
		ListingID:      listing.ID,
		TenantID:       tenantID,
		CheckIn:        in,
		CheckOut:       out,
		Slots:          req.Slots,
		Note:           req.Note,
		IdempotencyKey: req.IdempotencyKey,
		TotalPrice:     pricing.Total(nights, req.Slots, listing.Price, listing.Deposit),
	}

	created, err := s.BookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return models.Booking{}, err
	}

	_, err = s.Notification.Notify(ctx, models.Notification{
		UserID: listing.UserID,
		Type:   models.NotificationTypeBooking,
		Title:  "New booking request",
		Body:   fmt.Sprintf("New request for %q: %s to %s, %d slot(s).", listing.Title, req.CheckIn, req.CheckOut, req.Slots),
		Link:   fmt.Sprintf("/bookings/%d", created.ID),
	})
	if err != nil {
		return models.Booking{}, err
	}
	return created, nil
}

func (s *BookingService) GetBookingByID(ctx context.Context, id, requesterID int) (models.Booking, error) {
	booking, err := s.BookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.TenantID != requesterID && booking.LandlordID != requesterID {
		return models.Booking{}, ErrForbidden
	}
	return booking, nil
}

// AcceptBooking is landlord-only and reserves slots atomically. The version
// from the request guards against acting on a stale view of the booking.
func (s *BookingService) AcceptBooking(ctx context.Context, req models.BookingStatusRequest, requesterID int) (models.Booking, error) {
	booking, err := s.BookingRepo.GetBookingByID(ctx, req.BookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.LandlordID != requesterID {
		return models.Booking{}, ErrForbidden
	}

	accepted, err := s.BookingRepo.AcceptBooking(ctx, req.BookingID, req.Version)
	if err != nil {
		return models.Booking{}, err
	}

	s.notifyTenant(ctx, accepted, "Booking accepted",
		fmt.Sprintf("Your booking for %q was accepted.", accepted.ListingTitle))
	return accepted, nil
}

func (s *BookingService) RejectBooking(ctx context.Context, req models.BookingStatusRequest, requesterID int) (models.Booking, error) {
	booking, err := s.BookingRepo.GetBookingByID(ctx, req.BookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.LandlordID != requesterID {
		return models.Booking{}, ErrForbidden
	}

	rejected, err := s.BookingRepo.RejectBooking(ctx, req.BookingID, req.Version)
	if err != nil {
		return models.Booking{}, err
	}

	s.notifyTenant(ctx, rejected, "Booking rejected",
		fmt.Sprintf("Your booking for %q was rejected.", rejected.ListingTitle))
	return rejected, nil
}

// CancelBooking is tenant-only. Cancelling an accepted booking releases its
// slots back to the listing.
func (s *BookingService) CancelBooking(ctx context.Context, req models.BookingStatusRequest, requesterID int) (models.Booking, error) {
	booking, err := s.BookingRepo.GetBookingByID(ctx, req.BookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.TenantID != requesterID {
		return models.Booking{}, ErrForbidden
	}

	cancelled, err := s.BookingRepo.CancelBooking(ctx, req.BookingID, req.Version)
	if err != nil {
		return models.Booking{}, err
	}

	_, err = s.Notification.Notify(ctx, models.Notification{
		UserID: cancelled.LandlordID,
		Type:   models.NotificationTypeBooking,
		Title:  "Booking cancelled",
		Body:   fmt.Sprintf("The booking for %q was cancelled by the tenant.", cancelled.ListingTitle),
		Link:   fmt.Sprintf("/bookings/%d", cancelled.ID),
	})
	if err != nil {
		return models.Booking{}, err
	}
	return cancelled, nil
}

func (s *BookingService) notifyTenant(ctx context.Context, booking models.Booking, title, body string) {
	_, _ = s.Notification.Notify(ctx, models.Notification{
		UserID: booking.TenantID,
		Type:   models.NotificationTypeBooking,
		Title:  title,
		Body:   body,
		Link:   fmt.Sprintf("/bookings/%d", booking.ID),
	})
}

// ExpirePendingBookings rejects requests the landlord never answered and
// tells the tenants. Returns how many bookings were expired.
func (s *BookingService) ExpirePendingBookings(ctx context.Context, cutoff time.Time) (int, error) {
	expired, err := s.BookingRepo.ExpirePendingBookings(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	for _, booking := range expired {
		s.notifyTenant(ctx, booking, "Booking expired",
			"The landlord did not respond in time, your request was closed.")
	}
	return len(expired), nil
}

func (s *BookingService) GetBookingsByTenant(ctx context.Context, tenantID int, status string, page, limit int) ([]models.Booking, error) {
	return s.BookingRepo.GetBookingsByTenant(ctx, tenantID, status, page, limit)
}

func (s *BookingService) GetBookingsByListing(ctx context.Context, listingID, requesterID int, status string, page, limit int) ([]models.Booking, error) {
	listing, err := s.ListingRepo.GetListingByID(ctx, listingID, 0)
	if err != nil {
		return nil, err
	}
	if listing.UserID != requesterID {
		return nil, ErrForbidden
	}
	return s.BookingRepo.GetBookingsByListing(ctx, listingID, status, page, limit)
}
