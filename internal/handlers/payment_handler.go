package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func (h *PaymentHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookingID int `json:"booking_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookingID == 0 {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.CreateInvoice(r.Context(), req.BookingID, requesterID(r))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrBookingNotFound):
			http.Error(w, "Booking not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, services.ErrBookingNotPayable):
			http.Error(w, "Booking is not payable", http.StatusConflict)
		default:
			log.Printf("CreateInvoice error: %v", err)
			http.Error(w, "Failed to create invoice", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

// Webhook is called by the acquiring provider. The signature travels in the
// X-Signature header over the raw body.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	payment, err := h.Service.HandleWebhook(r.Context(), body, r.Header.Get("X-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadSignature):
			http.Error(w, "Bad signature", http.StatusForbidden)
		case errors.Is(err, repositories.ErrPaymentNotFound):
			http.Error(w, "Unknown invoice", http.StatusNotFound)
		default:
			log.Printf("Webhook error: %v", err)
			http.Error(w, "Failed to process webhook", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": payment.Status})
}

func (h *PaymentHandler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.GetPaymentsByUser(r.Context(), requesterID(r))
	if err != nil {
		log.Printf("GetMyPayments error: %v", err)
		http.Error(w, "Failed to fetch payments", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(payments)
}

// Refund is admin-only, used when a dispute is resolved in the tenant's favor.
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvoiceID string `json:"invoice_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.InvoiceID == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Service.Refund(r.Context(), req.InvoiceID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPaymentNotFound):
			http.Error(w, "Payment not found", http.StatusNotFound)
		case errors.Is(err, services.ErrBookingNotPayable):
			http.Error(w, "Payment is not refundable", http.StatusConflict)
		default:
			log.Printf("Refund error: %v", err)
			http.Error(w, "Failed to refund", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}
