package routes

import (
	"github.com/go-chi/chi/v5"

	"Tether/internal/api/handlers/comment"
	"Tether/internal/api/handlers/post"
	"Tether/internal/api/handlers/reaction"
	"Tether/internal/api/middleware"
	"Tether/internal/core/comments"
	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
)

// RegisterPostRoutes registers the post resource with its comment and reaction listings
func RegisterPostRoutes(r chi.Router, service posts.Service, commentService comments.Service, reactionService reactions.Service, authMiddleware *middleware.AuthMiddleware) {
	handler := post.NewHandler(service)
	commentHandler := comment.NewHandler(commentService)
	reactionHandler := reaction.NewHandler(reactionService)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", handler.HandleList)
		r.Get("/{id}", handler.HandleGet)
		r.Get("/{id}/comments", commentHandler.HandleListByPost)
		r.Get("/{id}/reactions", reactionHandler.HandleListByPost)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/", handler.HandleCreate)
			r.Put("/{id}", handler.HandleUpdate)
			r.Delete("/{id}", handler.HandleDelete)
		})
	})
}
