package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Tether/internal/api/middleware"
	"Tether/internal/core/actor"
	"Tether/internal/core/apperr"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 64 * 1024

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", slog.String("error", err.Error()))
	}
}

// WriteJSON writes body as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// HandleServiceError converts a service error to an HTTP response by its kind
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *apperr.ValidationError

	switch {
	case errors.As(err, &validationErr):
		WriteError(w, http.StatusBadRequest, "InvalidRequest", validationErr.Error())
	case apperr.IsValidation(err):
		WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case apperr.IsUnauthorized(err):
		WriteError(w, http.StatusUnauthorized, "AuthRequired", err.Error())
	case apperr.IsForbidden(err):
		WriteError(w, http.StatusForbidden, "NotAuthorized", err.Error())
	case apperr.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "NotFound", err.Error())
	case apperr.IsConflict(err):
		WriteError(w, http.StatusConflict, "AlreadyExists", err.Error())
	case apperr.IsDeleteFailed(err):
		slog.Error("cascade root delete failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		WriteError(w, http.StatusInternalServerError, "DeleteFailed", "The entity could not be deleted")
	default:
		// Internal server error - log the actual error for debugging
		slog.Error("handler error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}

// DecodeJSON reads a size-limited JSON body into dst.
// On failure it writes a 400 response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}
	return true
}

// PathID parses the named URL parameter as a positive id.
// On failure it writes a 400 response and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	return parseID(w, name, chi.URLParam(r, name))
}

// QueryID parses the named query parameter as a positive id.
// On failure it writes a 400 response and returns false.
func QueryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		WriteError(w, http.StatusBadRequest, "InvalidRequest", name+" is required")
		return 0, false
	}
	return parseID(w, name, raw)
}

func parseID(w http.ResponseWriter, name, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "InvalidRequest", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// RequireActor returns the authenticated caller.
// If the request is unauthenticated it writes a 401 response and returns false.
func RequireActor(w http.ResponseWriter, r *http.Request) (actor.Actor, bool) {
	caller, ok := middleware.GetActor(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return actor.Actor{}, false
	}
	return caller, true
}
