package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vestra-app/vestrago/internal/database"
	"github.com/vestra-app/vestrago/internal/models"
)

// MaintenanceChecker reports the currently active maintenance window, if any.
// Satisfied by maintenance.Scheduler.
type MaintenanceChecker interface {
	Current() *models.MaintenanceWindow
}

// MaintenanceGate answers 503 for every request while a maintenance window
// is active, unless the caller's role grants maintenance:manage (admins
// included). Runs after AuthMiddleware so claims are already in context.
func MaintenanceGate(db *database.DB, checker MaintenanceChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			window := checker.Current()
			if window == nil {
				next.ServeHTTP(w, r)
				return
			}

			// The window-status endpoint stays open so consoles can show
			// the notice while everything else is closed
			if strings.HasSuffix(r.URL.Path, "/maintenance/current") {
				next.ServeHTTP(w, r)
				return
			}

			if claims := ClaimsFrom(r); claims != nil {
				if role, _ := claims["role"].(string); role == "admin" {
					next.ServeHTTP(w, r)
					return
				}
				if roleID, ok := claims["roleId"].(float64); ok {
					var role models.Role
					if err := db.First(&role, uint(roleID)).Error; err == nil &&
						role.HasPermission(models.PermMaintenanceManage) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":       "System is under maintenance",
				"message":     window.Message,
				"maintenance": true,
				"endsAt":      window.EndsAt,
			})
		})
	}
}
