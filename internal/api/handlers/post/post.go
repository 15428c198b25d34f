package post

import (
	"net/http"

	"Tether/internal/api/handlers"
	"Tether/internal/core/posts"
)

// Handler serves the post resource
type Handler struct {
	service posts.Service
}

// NewHandler creates a new post handler
func NewHandler(service posts.Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate handles POST /api/v1/posts
//
// Request body: { "text": "..." }
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}

	var req posts.CreatePostRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.CreatePost(r.Context(), caller, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, posts.ToView(post))
}

// HandleList handles GET /api/v1/posts
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPosts(r.Context())
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.ToViews(list))
}

// HandleListByUser handles GET /api/v1/users/{id}/posts
func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.service.ListUserPosts(r.Context(), userID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.ToViews(list))
}

// HandleGet handles GET /api/v1/posts/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.ToView(post))
}

// HandleUpdate handles PUT /api/v1/posts/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	var req posts.UpdatePostRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.UpdatePost(r.Context(), caller, id, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, posts.ToView(post))
}

// HandleDelete handles DELETE /api/v1/posts/{id}
// The post's comments and reactions are removed with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), caller, id); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
