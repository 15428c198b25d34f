package reaction

import (
	"net/http"

	"Tether/internal/api/handlers"
	"Tether/internal/core/reactions"
)

// Handler serves the reaction resource
type Handler struct {
	service reactions.Service
}

// NewHandler creates a new reaction handler
func NewHandler(service reactions.Service) *Handler {
	return &Handler{service: service}
}

// PostReactionsResponse lists a post's reactions with their per-kind tally
type PostReactionsResponse struct {
	Reactions []reactions.View  `json:"reactions"`
	Summary   reactions.Summary `json:"summary"`
}

// HandleReact handles POST /api/v1/reactions
// A user may hold at most one reaction per post; a second one is rejected with 409.
//
// Request body: { "postId": 1, "kind": "like" }
func (h *Handler) HandleReact(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}

	var req reactions.CreateReactionRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	reaction, err := h.service.React(r.Context(), caller, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, reactions.ToView(reaction))
}

// HandleListByPost handles GET /api/v1/posts/{id}/reactions
func (h *Handler) HandleListByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.service.ListPostReactions(r.Context(), postID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, PostReactionsResponse{
		Reactions: reactions.ToViews(list),
		Summary:   reactions.Summarize(list),
	})
}

// HandleGet handles GET /api/v1/reactions/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	reaction, err := h.service.GetReaction(r.Context(), id)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, reactions.ToView(reaction))
}

// HandleUpdate handles PUT /api/v1/reactions/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	var req reactions.UpdateReactionRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	reaction, err := h.service.ChangeReaction(r.Context(), caller, id, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, reactions.ToView(reaction))
}

// HandleDelete handles DELETE /api/v1/reactions/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveReaction(r.Context(), caller, id); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
