package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

type ChatHandler struct {
	Service *services.ChatService
}

func (h *ChatHandler) StartChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListingID int `json:"listing_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ListingID == 0 {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	chatID, err := h.Service.StartChat(r.Context(), req.ListingID, requesterID(r))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, services.ErrOwnListing):
			http.Error(w, "Cannot chat with yourself", http.StatusConflict)
		default:
			log.Printf("StartChat error: %v", err)
			http.Error(w, "Failed to start chat", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(map[string]int{"chat_id": chatID})
}

func (h *ChatHandler) GetMyChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.Service.GetChatsByUserID(r.Context(), requesterID(r))
	if err != nil {
		log.Printf("GetMyChats error: %v", err)
		http.Error(w, "Failed to fetch chats", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(chats)
}

func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteChat(r.Context(), id, requesterID(r)); err != nil {
		switch {
		case errors.Is(err, repositories.ErrChatNotFound):
			http.Error(w, "Chat not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("DeleteChat error: %v", err)
			http.Error(w, "Failed to delete chat", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
