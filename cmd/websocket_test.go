package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"turakBack/internal/config"
	"turakBack/internal/models"
)

func newWSTestApp(t *testing.T) *application {
	t.Helper()
	cfg := config.Config{}
	cfg.JWT.SigningKey = "test-signing-key"
	return &application{cfg: cfg}
}

func signedWSToken(t *testing.T, key string, userID int) string {
	t.Helper()
	claims := &models.Claims{
		UserID: uint(userID),
		Role:   "tenant",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestWSAuthUserIDFromHeader(t *testing.T) {
	app := newWSTestApp(t)
	token := signedWSToken(t, "test-signing-key", 9)

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	got, err := app.wsAuthUserID(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 9 {
		t.Fatalf("expected user 9, got %d", got)
	}
}

func TestWSAuthUserIDFromQuery(t *testing.T) {
	app := newWSTestApp(t)
	token := signedWSToken(t, "test-signing-key", 4)

	r := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)

	got, err := app.wsAuthUserID(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Fatalf("expected user 4, got %d", got)
	}
}

func TestWSAuthUserIDRejectsBadToken(t *testing.T) {
	app := newWSTestApp(t)

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if _, err := app.wsAuthUserID(r); err == nil {
		t.Fatal("missing token must be rejected")
	}

	forged := signedWSToken(t, "some-other-key", 9)
	r = httptest.NewRequest(http.MethodGet, "/ws?token="+forged, nil)
	if _, err := app.wsAuthUserID(r); err == nil {
		t.Fatal("token signed with the wrong key must be rejected")
	}
}

func TestWebSocketHandlerRequiresAuth(t *testing.T) {
	app := newWSTestApp(t)
	app.wsManager = NewWebSocketManager()

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()
	app.WebSocketHandler(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated upgrade: expected 401, got %d", w.Code)
	}
}
