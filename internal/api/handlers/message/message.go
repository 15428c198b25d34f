package message

import (
	"net/http"

	"Tether/internal/api/handlers"
	"Tether/internal/core/messages"
)

// Handler serves direct messages. Every route requires authentication.
type Handler struct {
	service messages.Service
}

// NewHandler creates a new message handler
func NewHandler(service messages.Service) *Handler {
	return &Handler{service: service}
}

// HandleSend handles POST /api/v1/messages
//
// Request body: { "receiverId": 2, "text": "..." }
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}

	var req messages.SendMessageRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	message, err := h.service.SendMessage(r.Context(), caller, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, messages.ToView(message))
}

// HandleConversation handles GET /api/v1/messages?with={id}
func (h *Handler) HandleConversation(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	withID, ok := handlers.QueryID(w, r, "with")
	if !ok {
		return
	}

	list, err := h.service.ListConversation(r.Context(), caller, withID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, messages.ToViews(list))
}

// HandleGet handles GET /api/v1/messages/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	message, err := h.service.GetMessage(r.Context(), caller, id)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, messages.ToView(message))
}

// HandleEdit handles PUT /api/v1/messages/{id}
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	var req messages.EditMessageRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	message, err := h.service.EditMessage(r.Context(), caller, id, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, messages.ToView(message))
}

// HandleDelete handles DELETE /api/v1/messages/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMessage(r.Context(), caller, id); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
