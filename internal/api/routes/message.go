package routes

import (
	"github.com/go-chi/chi/v5"

	"Tether/internal/api/handlers/message"
	"Tether/internal/api/middleware"
	"Tether/internal/core/messages"
)

// RegisterMessageRoutes registers direct messages; every route requires authentication
func RegisterMessageRoutes(r chi.Router, service messages.Service, authMiddleware *middleware.AuthMiddleware) {
	handler := message.NewHandler(service)

	r.Route("/messages", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Post("/", handler.HandleSend)
		r.Get("/", handler.HandleConversation)
		r.Get("/{id}", handler.HandleGet)
		r.Put("/{id}", handler.HandleEdit)
		r.Delete("/{id}", handler.HandleDelete)
	})
}
