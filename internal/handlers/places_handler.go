package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

type PlacesHandler struct {
	Service *services.PlacesService
}

// NearbyPlaces lists points of interest around a listing, e.g.
// GET /listings/5/places?category=pharmacy&radius_m=500.
func (h *PlacesHandler) NearbyPlaces(w http.ResponseWriter, r *http.Request) {
	listingID, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}
	radius, _ := strconv.Atoi(q.Get("radius_m"))
	if radius <= 0 || radius > 5000 {
		radius = 1000
	}
	_, limit := pagination(r, 10)

	resp, err := h.Service.NearbyPlaces(r.Context(), listingID, category, radius, limit)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidCoordinates):
			http.Error(w, "Listing has no coordinates", http.StatusConflict)
		default:
			log.Printf("NearbyPlaces error: %v", err)
			http.Error(w, "Failed to fetch places", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(resp)
}
