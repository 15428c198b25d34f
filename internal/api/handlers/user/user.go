package user

import (
	"net/http"
	"time"

	"Tether/internal/api/handlers"
	"Tether/internal/core/users"
)

// Handler serves the user resource
type Handler struct {
	service users.Service
	now     func() time.Time
}

// NewHandler creates a new user handler
func NewHandler(service users.Service) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

// HandleList handles GET /api/v1/users
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, users.ToViews(list, h.now()))
}

// HandleGet handles GET /api/v1/users/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, users.ToView(user, h.now()))
}

// HandleUpdateProfile handles PUT /api/v1/users/{id}
// Only the account owner or an administrator may update a profile.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	var req users.UpdateProfileRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), caller, id, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, users.ToView(user, h.now()))
}

// HandleDelete handles DELETE /api/v1/users/{id}
// Removes the account together with every post, comment, reaction,
// interaction and message that references it.
//
// Security:
//   - Requires authentication
//   - Users can only delete their own account unless they are administrators
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := handlers.RequireActor(w, r)
	if !ok {
		return
	}
	id, ok := handlers.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), caller, id); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
