package routes

import (
	"github.com/go-chi/chi/v5"

	"Tether/internal/api/handlers/reaction"
	"Tether/internal/api/middleware"
	"Tether/internal/core/reactions"
)

// RegisterReactionRoutes registers the reaction resource
func RegisterReactionRoutes(r chi.Router, service reactions.Service, authMiddleware *middleware.AuthMiddleware) {
	handler := reaction.NewHandler(service)

	r.Route("/reactions", func(r chi.Router) {
		r.Get("/{id}", handler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/", handler.HandleReact)
			r.Put("/{id}", handler.HandleUpdate)
			r.Delete("/{id}", handler.HandleDelete)
		})
	})
}
