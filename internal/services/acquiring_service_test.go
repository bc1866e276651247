package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAcquiring(t *testing.T, baseURL string) *AcquiringService {
	t.Helper()
	svc, err := NewAcquiringService(AcquiringConfig{
		Username:   "user",
		Password:   "pass",
		TerminalID: "terminal",
		BaseURL:    baseURL,
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func TestNewAcquiringService_RequiresCredentials(t *testing.T) {
	_, err := NewAcquiringService(AcquiringConfig{BaseURL: "https://pay.example"})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestCreatePaymentLink_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/sign-in":
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
		case "/api/v2/payments":
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("authorization header mismatch: %q", got)
			}
			var req paymentRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if req.InvoiceID != "inv-1" {
				t.Errorf("invoice id mismatch: %q", req.InvoiceID)
			}
			if req.Amount != 45000 {
				t.Errorf("amount mismatch: %v", req.Amount)
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(paymentResponse{
				ID:          "pay-1",
				InvoiceID:   "inv-1",
				Status:      "created",
				RedirectURL: "https://pay.example/checkout/pay-1",
			})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	svc := newTestAcquiring(t, ts.URL)

	resp, err := svc.CreatePaymentLink(context.Background(), "inv-1", 45000, "Booking #1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.PaymentURL != "https://pay.example/checkout/pay-1" {
		t.Errorf("payment url mismatch: %q", resp.PaymentURL)
	}
	if resp.InvoiceID != "inv-1" {
		t.Errorf("invoice id mismatch: %q", resp.InvoiceID)
	}
}

func TestCreatePaymentLink_Non2xxReturnsAcquiringError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/sign-in" {
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}))
	defer ts.Close()

	svc := newTestAcquiring(t, ts.URL)

	_, err := svc.CreatePaymentLink(context.Background(), "inv-1", 10.0, "test")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	var acqErr *AcquiringError
	if !errors.As(err, &acqErr) {
		t.Fatalf("expected AcquiringError, got %T: %v", err, err)
	}
	if acqErr.StatusCode != http.StatusNotFound {
		t.Errorf("status code mismatch: %d", acqErr.StatusCode)
	}
}

func TestCreatePaymentLink_TokenReused(t *testing.T) {
	authCalls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/sign-in":
			authCalls++
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
		case "/api/v2/payments":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(paymentResponse{
				ID:          "pay-1",
				InvoiceID:   "inv-1",
				RedirectURL: "https://pay.example/checkout/pay-1",
			})
		}
	}))
	defer ts.Close()

	svc := newTestAcquiring(t, ts.URL)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreatePaymentLink(context.Background(), "inv-1", 100, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if authCalls != 1 {
		t.Errorf("expected 1 auth call, got %d", authCalls)
	}
}
