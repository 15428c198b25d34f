package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"Tether/internal/core/actor"
)

// Context keys for storing caller information
type contextKey string

const (
	ActorKey contextKey = "actor"
)

// TokenVerifier resolves a bearer token to the actor it was issued for
type TokenVerifier interface {
	Verify(token string) (actor.Actor, error)
}

// AuthMiddleware enforces bearer-token authentication for protected routes
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware backed by verifier
func NewAuthMiddleware(verifier TokenVerifier, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth ensures the request carries a valid Bearer token.
// If not authenticated, returns 401.
// If authenticated, injects the caller into the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		caller, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Debug("rejected bearer token", slog.String("error", err.Error()))
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ActorKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor extracts the authenticated caller from the request context.
// The second result is false if the request is not authenticated.
func GetActor(r *http.Request) (actor.Actor, bool) {
	caller, ok := r.Context().Value(ActorKey).(actor.Actor)
	if !ok || caller.UserID == 0 {
		return actor.Actor{}, false
	}
	return caller, true
}

// SetTestActor sets the caller in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestActor(ctx context.Context, caller actor.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, caller)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthenticationRequired",
		"message": message,
	}); err != nil {
		slog.Error("failed to write auth error response", slog.String("error", err.Error()))
	}
}
