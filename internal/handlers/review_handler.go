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

type ReviewHandler struct {
	Service *services.ReviewService
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		http.Error(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateReview(r.Context(), review, requesterID(r))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, repositories.ErrReviewExists):
			http.Error(w, "Listing already reviewed", http.StatusConflict)
		case errors.Is(err, services.ErrReviewNotAllowed):
			http.Error(w, "Review requires a completed booking", http.StatusForbidden)
		case errors.Is(err, services.ErrOwnListing):
			http.Error(w, "Cannot review own listing", http.StatusConflict)
		default:
			log.Printf("CreateReview error: %v", err)
			http.Error(w, "Failed to create review", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ReviewHandler) GetReviewsByListingID(w http.ResponseWriter, r *http.Request) {
	listingID, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}
	page, limit := pagination(r, 20)

	reviews, err := h.Service.GetReviewsByListingID(r.Context(), listingID, page, limit)
	if err != nil {
		log.Printf("GetReviewsByListingID error: %v", err)
		http.Error(w, "Failed to get reviews", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reviews)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	review.ID = id

	updated, err := h.Service.UpdateReview(r.Context(), review, requesterID(r))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrReviewNotFound):
			http.Error(w, "Review not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("UpdateReview error: %v", err)
			http.Error(w, "Failed to update review", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	isAdmin := requesterRole(r) == "admin"
	if err := h.Service.DeleteReview(r.Context(), id, requesterID(r), isAdmin); err != nil {
		switch {
		case errors.Is(err, repositories.ErrReviewNotFound):
			http.Error(w, "Review not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("DeleteReview error: %v", err)
			http.Error(w, "Failed to delete review", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
