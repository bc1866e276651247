package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"
)

// AcquiringConfig describes the card acquiring gateway the bookings are paid
// through. BaseURL points at the provider's API root.
type AcquiringConfig struct {
	Username   string
	Password   string
	TerminalID string
	BaseURL    string

	// Where to return the payer after checkout (front).
	SuccessBackURL string
	FailureBackURL string

	// Where the provider posts the webhook (back).
	CallbackURL string

	Client *http.Client
	Logger *slog.Logger
}

type AcquiringService struct {
	username   string
	password   string
	terminalID string
	baseURL    *url.URL

	successBackURL string
	failureBackURL string
	callbackURL    string

	httpClient *http.Client
	logger     *slog.Logger

	// jwt cache
	mu          sync.Mutex
	accessToken string
	tokenExp    time.Time
}

type AcquiringError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *AcquiringError) Error() string {
	return fmt.Sprintf("acquiring: %s: %s", e.Status, strings.TrimSpace(e.Body))
}

func NewAcquiringService(cfg AcquiringConfig) (*AcquiringService, error) {
	if strings.TrimSpace(cfg.Username) == "" ||
		strings.TrimSpace(cfg.Password) == "" ||
		strings.TrimSpace(cfg.TerminalID) == "" ||
		strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("acquiring: username/password/terminal_id/base_url are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	return &AcquiringService{
		username:       cfg.Username,
		password:       cfg.Password,
		terminalID:     cfg.TerminalID,
		baseURL:        u,
		successBackURL: cfg.SuccessBackURL,
		failureBackURL: cfg.FailureBackURL,
		callbackURL:    cfg.CallbackURL,
		httpClient:     client,
		logger:         logger,
	}, nil
}

func (s *AcquiringService) ensureToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Until(s.tokenExp) > 2*time.Minute {
		return s.accessToken, nil
	}

	type signInReq struct {
		User       string `json:"user"`
		Password   string `json:"password"`
		TerminalID string `json:"terminal_id"`
	}
	type signInResp struct {
		AccessToken string `json:"access_token"`
	}

	endpoint := *s.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/v1/auth/sign-in")
	body, _ := json.Marshal(signInReq{
		User:       s.username,
		Password:   s.password,
		TerminalID: s.terminalID,
	})

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("auth failed: %s %s", resp.Status, strings.TrimSpace(string(b)))
	}
	var out signInResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("auth decode: %w", err)
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return "", errors.New("auth: empty access_token")
	}
	s.accessToken = out.AccessToken
	s.tokenExp = time.Now().Add(55 * time.Minute)
	return s.accessToken, nil
}

type paymentRequest struct {
	InvoiceID       string  `json:"invoice_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description,omitempty"`
	Language        string  `json:"language,omitempty"`
	AutoCharge      int     `json:"auto_charge"`
	SuccessBackURL  string  `json:"success_back_url"`
	FailureBackURL  string  `json:"failure_back_url"`
	SuccessCallback string  `json:"success_callback"`
	FailureCallback string  `json:"failure_callback"`
}

type paymentResponse struct {
	ID          string `json:"id"`
	InvoiceID   string `json:"invoice_id"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url"`
}

type CreateInvoiceResponse struct {
	InvoiceID  string `json:"invoice_id"`
	PaymentURL string `json:"payment_url"`
	Status     string `json:"status"`
}

// CreatePaymentLink registers the payment and returns the checkout redirect.
func (s *AcquiringService) CreatePaymentLink(ctx context.Context, invoiceID string, amount float64, description string) (*CreateInvoiceResponse, error) {
	token, err := s.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := *s.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/v2/payments")

	reqBody := paymentRequest{
		InvoiceID:       invoiceID,
		Amount:          amount,
		Currency:        "KZT",
		Description:     description,
		Language:        "ru",
		AutoCharge:      1,
		SuccessBackURL:  s.successBackURL,
		FailureBackURL:  s.failureBackURL,
		SuccessCallback: s.callbackURL,
		FailureCallback: s.callbackURL,
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments request: %w", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return nil, &AcquiringError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}

	var out paymentResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	if strings.TrimSpace(out.RedirectURL) == "" || strings.TrimSpace(out.ID) == "" {
		return nil, fmt.Errorf("payments: empty redirect_url or id")
	}

	return &CreateInvoiceResponse{
		InvoiceID:  out.InvoiceID,
		PaymentURL: out.RedirectURL,
		Status:     out.Status,
	}, nil
}

// Return refunds a paid invoice, fully when amount is nil.
func (s *AcquiringService) Return(ctx context.Context, invoiceID string, amount *float64) error {
	token, err := s.ensureToken(ctx)
	if err != nil {
		return err
	}
	endpoint := *s.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/v1/payments/return")
	body := map[string]any{"invoice_id": invoiceID}
	if amount != nil {
		body["amount"] = *amount
	}
	b, _ := json.Marshal(body)
	req, _ := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint.String(), bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		rb, _ := io.ReadAll(resp.Body)
		return &AcquiringError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(rb)}
	}
	return nil
}
