package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vestra-app/vestrago/internal/utils"
)

type contextKey string

const UserContextKey contextKey = "user"

// AuthMiddleware verifies JWT tokens
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			// Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ValidateToken(parts[1], secret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			// Refresh tokens only work at the refresh endpoint
			if kind, _ := claims["type"].(string); kind != utils.TokenTypeAccess {
				http.Error(w, "Invalid token type", http.StatusUnauthorized)
				return
			}

			// Add claims to context
			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom extracts the JWT claims placed in the context by AuthMiddleware
func ClaimsFrom(r *http.Request) jwt.MapClaims {
	claims, _ := r.Context().Value(UserContextKey).(jwt.MapClaims)
	return claims
}

// ActorID returns the authenticated user's ID, or "" for anonymous requests
func ActorID(r *http.Request) string {
	claims := ClaimsFrom(r)
	if claims == nil {
		return ""
	}
	id, _ := claims["id"].(string)
	return id
}

// ActorName returns the authenticated user's display name
func ActorName(r *http.Request) string {
	claims := ClaimsFrom(r)
	if claims == nil {
		return ""
	}
	name, _ := claims["name"].(string)
	return name
}

// RoleName returns the role name carried in the access token
func RoleName(r *http.Request) string {
	claims := ClaimsFrom(r)
	if claims == nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
