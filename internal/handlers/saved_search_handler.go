package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

type SavedSearchHandler struct {
	Service *services.SavedSearchService
}

func (h *SavedSearchHandler) CreateSavedSearch(w http.ResponseWriter, r *http.Request) {
	var search models.SavedSearch
	if err := json.NewDecoder(r.Body).Decode(&search); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(search.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateSavedSearch(r.Context(), search, requesterID(r))
	if err != nil {
		log.Printf("CreateSavedSearch error: %v", err)
		http.Error(w, "Failed to create saved search", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *SavedSearchHandler) GetMySavedSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := h.Service.GetSavedSearchesByUser(r.Context(), requesterID(r))
	if err != nil {
		log.Printf("GetMySavedSearches error: %v", err)
		http.Error(w, "Failed to fetch saved searches", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(searches)
}

func (h *SavedSearchHandler) UpdateSavedSearch(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid saved search ID", http.StatusBadRequest)
		return
	}

	var search models.SavedSearch
	if err := json.NewDecoder(r.Body).Decode(&search); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	search.ID = id

	updated, err := h.Service.UpdateSavedSearch(r.Context(), search, requesterID(r))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSavedSearchNotFound):
			http.Error(w, "Saved search not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("UpdateSavedSearch error: %v", err)
			http.Error(w, "Failed to update saved search", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *SavedSearchHandler) DeleteSavedSearch(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid saved search ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteSavedSearch(r.Context(), id, requesterID(r)); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSavedSearchNotFound):
			http.Error(w, "Saved search not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("DeleteSavedSearch error: %v", err)
			http.Error(w, "Failed to delete saved search", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
