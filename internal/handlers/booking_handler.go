package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	quote, err := h.Service.Quote(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidDateRange), errors.Is(err, services.ErrInvalidSlots):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrListingNotActive):
			http.Error(w, "Listing is not active", http.StatusConflict)
		default:
			log.Printf("Quote error: %v", err)
			http.Error(w, "Failed to build quote", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(quote)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.CreateBooking(r.Context(), req, requesterID(r))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidDateRange), errors.Is(err, services.ErrInvalidSlots):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrListingNotActive):
			http.Error(w, "Listing is not active", http.StatusConflict)
		case errors.Is(err, services.ErrOwnListing):
			http.Error(w, "Cannot book own listing", http.StatusUnprocessableEntity)
		case errors.Is(err, repositories.ErrCapacityExceeded):
			http.Error(w, "Not enough slots", http.StatusConflict)
		default:
			log.Printf("CreateBooking error: %v", err)
			http.Error(w, "Failed to create booking", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.GetBookingByID(r.Context(), id, requesterID(r))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("GetBookingByID error: %v", err)
			http.Error(w, "Failed to get booking", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(booking)
}

type bookingStatusFunc func(r *http.Request, req models.BookingStatusRequest) (models.Booking, error)

func (h *BookingHandler) applyStatus(w http.ResponseWriter, r *http.Request, apply bookingStatusFunc) {
	var req models.BookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookingID == 0 {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	booking, err := apply(r, req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, repositories.ErrVersionConflict):
			http.Error(w, "Booking was modified, refresh and retry", http.StatusConflict)
		case errors.Is(err, repositories.ErrCapacityExceeded):
			http.Error(w, "Not enough slots", http.StatusConflict)
		case errors.Is(err, repositories.ErrInvalidTransition):
			http.Error(w, "Status change not allowed", http.StatusConflict)
		default:
			log.Printf("Booking status error: %v", err)
			http.Error(w, "Failed to update booking", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	h.applyStatus(w, r, func(r *http.Request, req models.BookingStatusRequest) (models.Booking, error) {
		return h.Service.AcceptBooking(r.Context(), req, requesterID(r))
	})
}

func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	h.applyStatus(w, r, func(r *http.Request, req models.BookingStatusRequest) (models.Booking, error) {
		return h.Service.RejectBooking(r.Context(), req, requesterID(r))
	})
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.applyStatus(w, r, func(r *http.Request, req models.BookingStatusRequest) (models.Booking, error) {
		return h.Service.CancelBooking(r.Context(), req, requesterID(r))
	})
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 20)

	bookings, err := h.Service.GetBookingsByTenant(r.Context(), requesterID(r), r.URL.Query().Get("status"), page, limit)
	if err != nil {
		log.Printf("GetMyBookings error: %v", err)
		http.Error(w, "Failed to fetch bookings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) GetBookingsByListing(w http.ResponseWriter, r *http.Request) {
	listingID, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}
	page, limit := pagination(r, 20)

	bookings, err := h.Service.GetBookingsByListing(r.Context(), listingID, requesterID(r), r.URL.Query().Get("status"), page, limit)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("GetBookingsByListing error: %v", err)
			http.Error(w, "Failed to fetch bookings", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(bookings)
}
