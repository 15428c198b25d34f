package comment

import (
	"net/http"

	"Tether/internal/api/handlers"
	"Tether/internal/core/comments"
)

// Handler serves the comment resource
type Handler struct {
	service comments.Service
}

// NewHandler creates a new comment handler
func NewHandler(service comments.Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate handles POST /api/v1/comments
//
// Request body: { "postId": 1, "text": "..." }
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}

	var req comments.CreateCommentRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.CreateComment(r.Context(), caller, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, comments.ToView(comment))
}

// HandleListByPost handles GET /api/v1/posts/{id}/comments
func (h *Handler) HandleListByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.service.ListPostComments(r.Context(), postID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, comments.ToViews(list))
}

// HandleGet handles GET /api/v1/comments/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	comment, err := h.service.GetComment(r.Context(), id)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, comments.ToView(comment))
}

// HandleUpdate handles PUT /api/v1/comments/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	var req comments.UpdateCommentRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), caller, id, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, comments.ToView(comment))
}

// HandleDelete handles DELETE /api/v1/comments/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), caller, id); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
