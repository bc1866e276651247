package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

type ListingHandler struct {
	Service *services.ListingService
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	listing, err := listingFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := collectImageFiles(r.MultipartForm, "photos[]", "photo")
	if len(files) > 0 {
		uploaded, err := uploadListingPhotos(files, "listings")
		if err != nil {
			log.Printf("CreateListing upload error: %v", err)
			http.Error(w, "Failed to upload photos", http.StatusInternalServerError)
			return
		}
		listing.Photos = append(listing.Photos, uploaded...)
	}

	created, err := h.Service.CreateListing(r.Context(), listing, requesterID(r))
	if err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "Unknown city", http.StatusBadRequest)
			return
		}
		log.Printf("CreateListing error: %v", err)
		http.Error(w, "Failed to create listing", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func listingFromForm(r *http.Request) (models.Listing, error) {
	var listing models.Listing

	listing.Title = r.FormValue("title")
	if strings.TrimSpace(listing.Title) == "" {
		return listing, errors.New("title is required")
	}
	listing.Address = r.FormValue("address")
	listing.Description = r.FormValue("description")
	listing.CityID, _ = strconv.Atoi(r.FormValue("city_id"))
	listing.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	listing.Deposit, _ = strconv.ParseFloat(r.FormValue("deposit"), 64)
	listing.TotalSlots, _ = strconv.Atoi(r.FormValue("total_slots"))
	if listing.TotalSlots < 1 {
		listing.TotalSlots = 1
	}
	listing.AvailableSlots = listing.TotalSlots

	if lat := strings.TrimSpace(r.FormValue("latitude")); lat != "" {
		if v, err := strconv.ParseFloat(lat, 64); err == nil {
			listing.Latitude = &v
		}
	}
	if lon := strings.TrimSpace(r.FormValue("longitude")); lon != "" {
		if v, err := strconv.ParseFloat(lon, 64); err == nil {
			listing.Longitude = &v
		}
	}

	if amenities := r.FormValue("amenities"); amenities != "" {
		listing.Amenities = splitCommaList(amenities)
	}
	if rules := r.FormValue("rules"); rules != "" {
		listing.Rules = splitCommaList(rules)
	}

	photos, ok, err := parseListingPhotos(r.MultipartForm, "photos_json")
	if err != nil {
		return listing, err
	}
	if ok {
		listing.Photos = photos
	}
	return listing, nil
}

func splitCommaList(input string) []string {
	parts := strings.Split(input, ",")
	var result []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (h *ListingHandler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	listing, err := h.Service.GetListingByID(r.Context(), id, optionalUserID(r))
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		log.Printf("GetListingByID error: %v", err)
		http.Error(w, "Failed to get listing", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(listing)
}

func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	priceFrom, _ := strconv.ParseFloat(q.Get("price_from"), 64)
	priceTo, _ := strconv.ParseFloat(q.Get("price_to"), 64)
	minRating, _ := strconv.ParseFloat(q.Get("min_rating"), 64)
	sorting, _ := strconv.Atoi(q.Get("sort"))
	cityID, _ := strconv.Atoi(q.Get("city_id"))
	page, limit := pagination(r, 20)

	filter := models.ListingFilterRequest{
		CityID:     cityID,
		PriceFrom:  priceFrom,
		PriceTo:    priceTo,
		Amenities:  splitCommaList(q.Get("amenities")),
		MinRating:  minRating,
		OnlyVacant: q.Get("only_vacant") == "1" || q.Get("only_vacant") == "true",
		Sorting:    sorting,
		Page:       page,
		Limit:      limit,
	}

	result, err := h.Service.GetFilteredListings(r.Context(), filter, optionalUserID(r))
	if err != nil {
		log.Printf("GetListings error: %v", err)
		http.Error(w, "Failed to fetch listings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(result)
}

func (h *ListingHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	cursor, _ := strconv.Atoi(r.URL.Query().Get("cursor"))
	_, limit := pagination(r, 20)

	feed, err := h.Service.GetFeed(r.Context(), cursor, limit)
	if err != nil {
		log.Printf("GetFeed error: %v", err)
		http.Error(w, "Failed to fetch feed", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(feed)
}

func (h *ListingHandler) GetMyListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Service.GetListingsByUserID(r.Context(), requesterID(r))
	if err != nil {
		log.Printf("GetMyListings error: %v", err)
		http.Error(w, "Failed to fetch listings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(listings)
}

func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	var listing models.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	listing.ID = id

	updated, err := h.Service.UpdateListing(r.Context(), listing, requesterID(r))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("UpdateListing error: %v", err)
			http.Error(w, "Failed to update listing", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *ListingHandler) ArchiveListing(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.ArchiveListing(r.Context(), id, requesterID(r)); err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("ArchiveListing error: %v", err)
			http.Error(w, "Failed to archive listing", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	isAdmin := requesterRole(r) == "admin"
	if err := h.Service.DeleteListing(r.Context(), id, requesterID(r), isAdmin); err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("DeleteListing error: %v", err)
			http.Error(w, "Failed to delete listing", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ListingHandler) NearbyListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cityID, _ := strconv.Atoi(q.Get("city_id"))
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		http.Error(w, "lat and lon are required", http.StatusBadRequest)
		return
	}
	radius, _ := strconv.ParseFloat(q.Get("radius_m"), 64)
	if radius <= 0 {
		radius = 3000
	}
	_, limit := pagination(r, 20)

	listings, err := h.Service.NearbyListings(r.Context(), cityID, lon, lat, radius, limit, optionalUserID(r))
	if err != nil {
		log.Printf("NearbyListings error: %v", err)
		http.Error(w, "Failed to fetch listings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(listings)
}

// Favorites.

func (h *ListingHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	listingID, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.AddToFavorites(r.Context(), requesterID(r), listingID); err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		log.Printf("AddToFavorites error: %v", err)
		http.Error(w, "Failed to add favorite", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ListingHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	listingID, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.RemoveFromFavorites(r.Context(), requesterID(r), listingID); err != nil {
		log.Printf("RemoveFromFavorites error: %v", err)
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ListingHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	listingID, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}
	liked, err := h.Service.IsFavorite(r.Context(), requesterID(r), listingID)
	if err != nil {
		log.Printf("IsFavorite error: %v", err)
		http.Error(w, "Failed to check favorite", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"favorite": liked})
}

func (h *ListingHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Service.GetFavoritesByUser(r.Context(), requesterID(r))
	if err != nil {
		log.Printf("GetFavorites error: %v", err)
		http.Error(w, "Failed to fetch favorites", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(listings)
}

// Moderation (admin).

func (h *ListingHandler) GetPendingListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Service.GetPendingListings(r.Context())
	if err != nil {
		log.Printf("GetPendingListings error: %v", err)
		http.Error(w, "Failed to fetch listings", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(listings)
}

func (h *ListingHandler) ApproveListing(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.ApproveListing(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		log.Printf("ApproveListing error: %v", err)
		http.Error(w, "Failed to approve listing", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ListingHandler) RejectListing(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.Service.RejectListing(r.Context(), id, req.Reason); err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		log.Printf("RejectListing error: %v", err)
		http.Error(w, "Failed to reject listing", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
