package routes

import (
	"github.com/go-chi/chi/v5"

	"Tether/internal/api/handlers/post"
	"Tether/internal/api/handlers/user"
	"Tether/internal/api/middleware"
	"Tether/internal/core/posts"
	"Tether/internal/core/users"
)

// RegisterUserRoutes registers the user resource and the per-user post listing
func RegisterUserRoutes(r chi.Router, service users.Service, postService posts.Service, authMiddleware *middleware.AuthMiddleware) {
	handler := user.NewHandler(service)
	postHandler := post.NewHandler(postService)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", handler.HandleList)
		r.Get("/{id}", handler.HandleGet)
		r.Get("/{id}/posts", postHandler.HandleListByUser)

		r.With(authMiddleware.RequireAuth).Put("/{id}", handler.HandleUpdateProfile)
		r.With(authMiddleware.RequireAuth).Delete("/{id}", handler.HandleDelete)
	})
}
