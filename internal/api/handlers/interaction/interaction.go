package interaction

import (
	"net/http"

	"Tether/internal/api/handlers"
	"Tether/internal/core/interactions"
)

// Handler serves the interaction resource
type Handler struct {
	service interactions.Service
}

// NewHandler creates a new interaction handler
func NewHandler(service interactions.Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate handles POST /api/v1/interactions
// The pair may hold one interaction in either direction; a second one is rejected with 409.
//
// Request body: { "user2Id": 2, "status": "friend" }
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}

	var req interactions.CreateInteractionRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	interaction, err := h.service.CreateInteraction(r.Context(), caller, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, interactions.ToView(interaction))
}

// HandleList handles GET /api/v1/interactions?userId={id}[&with={id}]
// With both parameters it returns the single interaction between the two users.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.QueryID(w, r, "userId")
	if !ok {
		return
	}

	if r.URL.Query().Has("with") {
		withID, ok := handlers.QueryID(w, r, "with")
		if !ok {
			return
		}
		interaction, err := h.service.GetBetween(r.Context(), userID, withID)
		if err != nil {
			handlers.HandleServiceError(w, r, err)
			return
		}
		handlers.WriteJSON(w, http.StatusOK, interactions.ToView(interaction))
		return
	}

	list, err := h.service.ListUserInteractions(r.Context(), userID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, interactions.ToViews(list))
}

// HandleGet handles GET /api/v1/interactions/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	interaction, err := h.service.GetInteraction(r.Context(), id)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, interactions.ToView(interaction))
}

// HandleUpdate handles PUT /api/v1/interactions/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	var req interactions.UpdateStatusRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	interaction, err := h.service.UpdateStatus(r.Context(), caller, id, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, interactions.ToView(interaction))
}

// HandleDelete handles DELETE /api/v1/interactions/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteInteraction(r.Context(), caller, id); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
