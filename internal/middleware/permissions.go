package middleware

import (
	"net/http"

	"github.com/vestra-app/vestrago/internal/database"
	"github.com/vestra-app/vestrago/internal/models"
)

// RequirePermission gates a handler behind one permission string. The role
// name in the token short-circuits admins; everyone else gets a role lookup
// so permission edits take effect without re-login.
func RequirePermission(db *database.DB, perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFrom(r)
			if claims == nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			if role, _ := claims["role"].(string); role == "admin" {
				next.ServeHTTP(w, r)
				return
			}

			roleID, ok := claims["roleId"].(float64)
			if !ok {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}

			var role models.Role
			if err := db.First(&role, uint(roleID)).Error; err != nil {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}
			if !role.HasPermission(perm) {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
