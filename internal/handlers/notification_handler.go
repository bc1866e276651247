package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func (h *NotificationHandler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 20)

	notifications, err := h.Service.GetNotificationsByUser(r.Context(), requesterID(r), page, limit)
	if err != nil {
		log.Printf("GetMyNotifications error: %v", err)
		http.Error(w, "Failed to fetch notifications", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid notification ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.MarkRead(r.Context(), id, requesterID(r)); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			http.Error(w, "Notification not found", http.StatusNotFound)
			return
		}
		log.Printf("MarkRead error: %v", err)
		http.Error(w, "Failed to mark notification", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.MarkAllRead(r.Context(), requesterID(r)); err != nil {
		log.Printf("MarkAllRead error: %v", err)
		http.Error(w, "Failed to mark notifications", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.UnreadCount(r.Context(), requesterID(r))
	if err != nil {
		log.Printf("UnreadCount error: %v", err)
		http.Error(w, "Failed to count notifications", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int{"unread": count})
}
