package routes

import (
	"github.com/go-chi/chi/v5"

	"Tether/internal/api/handlers/auth"
	"Tether/internal/api/middleware"
	"Tether/internal/core/users"
)

// RegisterAuthRoutes registers account registration and login.
// Both are public and share a dedicated rate limit.
func RegisterAuthRoutes(r chi.Router, service users.Service, issuer auth.TokenIssuer, limiter *middleware.RateLimiter) {
	handler := auth.NewHandler(service, issuer)

	r.Route("/auth", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Post("/register", handler.HandleRegister)
		r.Post("/login", handler.HandleLogin)
	})
}
