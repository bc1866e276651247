package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"turakBack/internal/fsm"
	"turakBack/internal/models"
	"turakBack/internal/pay"
	"turakBack/internal/repositories"
)

var (
	ErrBookingNotPayable = errors.New("services: only accepted bookings can be paid")
	ErrBadSignature      = errors.New("services: webhook signature mismatch")
)

type PaymentService struct {
	PaymentRepo  *repositories.PaymentRepository
	BookingRepo  *repositories.BookingRepository
	Acquiring    *AcquiringService
	Notification *NotificationService
	WebhookKey   string
}

// CreateInvoice starts a checkout for an accepted booking owned by the
// requester and records the payment as created.
func (s *PaymentService) CreateInvoice(ctx context.Context, bookingID, requesterID int) (models.Payment, error) {
	booking, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.Payment{}, err
	}
	if booking.TenantID != requesterID {
		return models.Payment{}, ErrForbidden
	}
	if booking.Status != fsm.StatusAccepted {
		return models.Payment{}, ErrBookingNotPayable
	}

	invoiceID := uuid.New().String()
	link, err := s.Acquiring.CreatePaymentLink(ctx, invoiceID, booking.TotalPrice,
		fmt.Sprintf("Booking #%d, %s", booking.ID, booking.ListingTitle))
	if err != nil {
		return models.Payment{}, err
	}

	return s.PaymentRepo.CreatePayment(ctx, models.Payment{
		BookingID:  booking.ID,
		UserID:     requesterID,
		InvoiceID:  invoiceID,
		Amount:     booking.TotalPrice,
		Status:     models.PaymentStatusCreated,
		PaymentURL: link.PaymentURL,
	})
}

type webhookPayload struct {
	InvoiceID string `json:"invoice_id"`
	Status    string `json:"status"`
}

// HandleWebhook verifies the provider signature and applies the status
// change. Unknown statuses are treated as failures.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) (models.Payment, error) {
	if !pay.VerifyHMAC(body, signature, s.WebhookKey) {
		return models.Payment{}, ErrBadSignature
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.Payment{}, fmt.Errorf("decode webhook: %w", err)
	}

	payment, err := s.PaymentRepo.GetPaymentByInvoiceID(ctx, payload.InvoiceID)
	if err != nil {
		return models.Payment{}, err
	}
	// Providers retry webhooks; a settled payment stays settled.
	if payment.Status != models.PaymentStatusCreated {
		return payment, nil
	}

	status := models.PaymentStatusFailed
	if payload.Status == "paid" || payload.Status == "success" {
		status = models.PaymentStatusPaid
	}
	if err := s.PaymentRepo.SetStatus(ctx, payload.InvoiceID, status); err != nil {
		return models.Payment{}, err
	}
	payment.Status = status

	title := "Payment failed"
	pbody := fmt.Sprintf("Payment for booking #%d did not go through.", payment.BookingID)
	if status == models.PaymentStatusPaid {
		title = "Payment received"
		pbody = fmt.Sprintf("Payment for booking #%d was received.", payment.BookingID)
	}
	_, _ = s.Notification.Notify(ctx, models.Notification{
		UserID: payment.UserID,
		Type:   models.NotificationTypePayment,
		Title:  title,
		Body:   pbody,
		Link:   fmt.Sprintf("/bookings/%d", payment.BookingID),
	})
	return payment, nil
}

// Refund returns the money for a paid invoice. Admin-gated by the handler.
func (s *PaymentService) Refund(ctx context.Context, invoiceID string) error {
	payment, err := s.PaymentRepo.GetPaymentByInvoiceID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if payment.Status != models.PaymentStatusPaid {
		return ErrBookingNotPayable
	}
	if err := s.Acquiring.Return(ctx, invoiceID, nil); err != nil {
		return err
	}
	return s.PaymentRepo.SetStatus(ctx, invoiceID, models.PaymentStatusRefunded)
}

func (s *PaymentService) GetPaymentsByUser(ctx context.Context, userID int) ([]models.Payment, error) {
	return s.PaymentRepo.GetPaymentsByUser(ctx, userID)
}
