package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"turakBack/internal/models"
	"turakBack/internal/services"
)

type stubListingGetter struct {
	listing models.Listing
}

func (s stubListingGetter) GetListingByID(ctx context.Context, id, viewerID int) (models.Listing, error) {
	return s.listing, nil
}

func TestCreateBookingOwnListingStatusCode(t *testing.T) {
	h := &BookingHandler{Service: &services.BookingService{
		ListingRepo: stubListingGetter{listing: models.Listing{
			ID:         1,
			UserID:     5,
			Status:     "active",
			TotalSlots: 3,
		}},
	}}

	body := `{"listing_id":1,"check_in":"2026-09-01","check_out":"2026-09-04","slots":1}`
	r := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(body))
	r = r.WithContext(context.WithValue(r.Context(), "user_id", 5))
	w := httptest.NewRecorder()

	h.CreateBooking(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("landlord booking own listing: expected 422, got %d", w.Code)
	}
}
