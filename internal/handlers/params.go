package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"turakBack/internal/models"
)

var signingKey string

// SetSigningKey wires the JWT secret for optional-auth endpoints. Called once
// at startup.
func SetSigningKey(key string) {
	signingKey = key
}

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

func intParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(getParam(r, name))
}

// pagination reads page/limit query parameters with sane defaults.
func pagination(r *http.Request, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

func requesterID(r *http.Request) int {
	userID, _ := r.Context().Value("user_id").(int)
	return userID
}

func requesterRole(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}

// optionalUserID identifies the caller on public endpoints: first from the
// request context, then from a Bearer token if one is attached. Returns 0 for
// anonymous requests.
func optionalUserID(r *http.Request) int {
	if userID := requesterID(r); userID != 0 {
		return userID
	}

	tokenString := r.Header.Get("Authorization")
	if !strings.HasPrefix(tokenString, "Bearer ") {
		return 0
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(signingKey), nil
	})
	if err != nil || !token.Valid {
		return 0
	}
	return int(claims.UserID)
}
