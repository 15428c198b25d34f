package routes

import (
	"github.com/go-chi/chi/v5"

	"Tether/internal/api/handlers/interaction"
	"Tether/internal/api/middleware"
	"Tether/internal/core/interactions"
)

// RegisterInteractionRoutes registers the interaction resource
func RegisterInteractionRoutes(r chi.Router, service interactions.Service, authMiddleware *middleware.AuthMiddleware) {
	handler := interaction.NewHandler(service)

	r.Route("/interactions", func(r chi.Router) {
		r.Get("/", handler.HandleList)
		r.Get("/{id}", handler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/", handler.HandleCreate)
			r.Put("/{id}", handler.HandleUpdate)
			r.Delete("/{id}", handler.HandleDelete)
		})
	})
}
