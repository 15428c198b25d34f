package routes

import (
	"github.com/go-chi/chi/v5"

	"Tether/internal/api/handlers/comment"
	"Tether/internal/api/middleware"
	"Tether/internal/core/comments"
)

// RegisterCommentRoutes registers the comment resource
func RegisterCommentRoutes(r chi.Router, service comments.Service, authMiddleware *middleware.AuthMiddleware) {
	handler := comment.NewHandler(service)

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{id}", handler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/", handler.HandleCreate)
			r.Put("/{id}", handler.HandleUpdate)
			r.Delete("/{id}", handler.HandleDelete)
		})
	})
}
