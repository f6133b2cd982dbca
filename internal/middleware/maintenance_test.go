package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vestra-app/vestrago/internal/models"
)

type stubChecker struct {
	window *models.MaintenanceWindow
}

func (s stubChecker) Current() *models.MaintenanceWindow { return s.window }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest("GET", "/api/items", nil)
	claims := jwt.MapClaims{"id": "uuid-1", "role": role}
	return req.WithContext(context.WithValue(req.Context(), UserContextKey, claims))
}

func TestMaintenanceGateOpenSystem(t *testing.T) {
	gate := MaintenanceGate(nil, stubChecker{})(okHandler())

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, requestWithRole("viewer"))
	if rec.Code != http.StatusOK {
		t.Errorf("No active window should pass through, got %d", rec.Code)
	}
}

func TestMaintenanceGateBlocksNonAdmins(t *testing.T) {
	window := &models.MaintenanceWindow{ID: 1, Message: "Upgrading", Status: models.MaintenanceActive}
	gate := MaintenanceGate(nil, stubChecker{window: window})(okHandler())

	// Anonymous request
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest("GET", "/api/items", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Anonymous request should get 503, got %d", rec.Code)
	}

	// Admins bypass without a role lookup
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, requestWithRole("admin"))
	if rec.Code != http.StatusOK {
		t.Errorf("Admin should bypass maintenance, got %d", rec.Code)
	}
}

func TestMaintenanceGateExemptsWindowStatus(t *testing.T) {
	window := &models.MaintenanceWindow{ID: 1, Message: "Upgrading", Status: models.MaintenanceActive}
	gate := MaintenanceGate(nil, stubChecker{window: window})(okHandler())

	req := httptest.NewRequest("GET", "/api/system-admin/maintenance/current", nil)
	claims := jwt.MapClaims{"id": "uuid-1", "role": "viewer"}
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, claims))

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Window status endpoint must stay reachable during maintenance, got %d", rec.Code)
	}
}
