package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

type MessageHandler struct {
	Service *services.MessageService
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID int    `json:"chat_id"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.ChatID == 0 || strings.TrimSpace(req.Text) == "" {
		http.Error(w, "chat_id and text are required", http.StatusBadRequest)
		return
	}

	message, err := h.Service.SendMessage(r.Context(), req.ChatID, requesterID(r), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrChatNotFound):
			http.Error(w, "Chat not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("SendMessage error: %v", err)
			http.Error(w, "Failed to send message", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(message)
}

func (h *MessageHandler) GetMessagesForChat(w http.ResponseWriter, r *http.Request) {
	chatID, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}
	page, limit := pagination(r, 50)

	messages, err := h.Service.GetMessagesForChat(r.Context(), chatID, requesterID(r), page, limit)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrChatNotFound):
			http.Error(w, "Chat not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("GetMessagesForChat error: %v", err)
			http.Error(w, "Failed to fetch messages", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(messages)
}

func (h *MessageHandler) MarkChatRead(w http.ResponseWriter, r *http.Request) {
	chatID, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.MarkChatRead(r.Context(), chatID, requesterID(r)); err != nil {
		log.Printf("MarkChatRead error: %v", err)
		http.Error(w, "Failed to mark chat read", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.UnreadCount(r.Context(), requesterID(r))
	if err != nil {
		log.Printf("UnreadCount error: %v", err)
		http.Error(w, "Failed to count unread", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int{"unread": count})
}

func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteMessage(r.Context(), id, requesterID(r)); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMessageNotFound):
			http.Error(w, "Message not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("DeleteMessage error: %v", err)
			http.Error(w, "Failed to delete message", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
