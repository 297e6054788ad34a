// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// recruiterIDKey is the context key for the authenticated recruiter ID.
const recruiterIDKey ContextKey = "recruiterID"

// TokenValidator validates bearer tokens. The middleware works with any
// token service through this interface.
type TokenValidator interface {
	ValidateToken(tokenString string) (RecruiterIDGetter, error)
}

// RecruiterIDGetter extracts the recruiter ID from token claims.
type RecruiterIDGetter interface {
	GetRecruiterID() uuid.UUID
}

// Auth creates middleware that validates bearer tokens and adds the
// recruiter ID to the request context.
func Auth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), recruiterIDKey, claims.GetRecruiterID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRecruiterID extracts the authenticated recruiter ID from the request
// context.
func GetRecruiterID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(recruiterIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("recruiter ID not found in request context")
	}
	return id, nil
}

// RecruiterIDKey returns the context key for the recruiter ID (for tests).
func RecruiterIDKey() ContextKey {
	return recruiterIDKey
}
