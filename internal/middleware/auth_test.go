package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vestra-app/vestrago/internal/models"
	"github.com/vestra-app/vestrago/internal/utils"
)

func TestAuthMiddlewareRejectsRefreshTokens(t *testing.T) {
	secret := "test-secret-key-12345"
	user := &models.StaffUser{
		ID:     "uuid-1234",
		Email:  "test@example.com",
		RoleID: 2,
		Role:   &models.Role{ID: 2, Name: "inventory"},
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user, secret)
	if err != nil {
		t.Fatalf("Failed to generate tokens: %v", err)
	}

	handler := AuthMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Access token passes
	req := httptest.NewRequest("GET", "/api/items", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Access token should authenticate, got %d", rec.Code)
	}

	// Refresh token is only good at the refresh endpoint
	req = httptest.NewRequest("GET", "/api/items", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Refresh token must not authenticate API requests, got %d", rec.Code)
	}
}
