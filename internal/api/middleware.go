/**
 * @description
 * Authentication and authorization middleware. RequireAuth is the single
 * gate every protected route passes through: it extracts the bearer token,
 * verifies it, and attaches the decoded claims to the request context.
 * RequireRole builds on those claims and must therefore always run after
 * RequireAuth; a request with no claims in context is denied.
 */

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/swiftremit/payments-service/internal/auth"
	"github.com/swiftremit/payments-service/internal/domain"
)

// claimsContextKey is a custom type for the context key to avoid collisions.
type claimsContextKey string

const claimsKey claimsContextKey = "authClaims"

// GetClaims retrieves the verified claims from the request context.
func GetClaims(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*domain.Claims)
	return claims, ok
}

func bearerToken(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

// RequireAuth creates a middleware that verifies bearer tokens and injects
// the decoded claims into the request context.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				http.Error(w, "Token invalid or expired", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates a middleware that permits a request only when the
// role attached by RequireAuth is in the allow-list. A missing role denies.
func RequireRole(allowedRoles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders sets conservative browser-facing headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}
