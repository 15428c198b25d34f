package auth

import (
	"net/http"
	"time"

	"Tether/internal/api/handlers"
	"Tether/internal/core/users"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *users.User) (string, time.Time, error)
}

// Handler serves account registration and login
type Handler struct {
	service users.Service
	issuer  TokenIssuer
	now     func() time.Time
}

// NewHandler creates a new auth handler
func NewHandler(service users.Service, issuer TokenIssuer) *Handler {
	return &Handler{
		service: service,
		issuer:  issuer,
		now:     time.Now,
	}
}

// TokenResponse is returned by register and login
type TokenResponse struct {
	ExpiresAt time.Time  `json:"expiresAt"`
	Token     string     `json:"token"`
	User      users.View `json:"user"`
}

// HandleRegister creates an account and returns an access token for it
// POST /api/v1/auth/register
//
// Request body: { "name", "lastName", "dateOfBirth": "YYYY-MM-DD", "info", "email", "password" }
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	h.writeToken(w, r, http.StatusCreated, user)
}

// HandleLogin exchanges an email/password pair for an access token
// POST /api/v1/auth/login
//
// Request body: { "email", "password" }
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req users.LoginRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	h.writeToken(w, r, http.StatusOK, user)
}

func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, status int, user *users.User) {
	token, expiresAt, err := h.issuer.Issue(user)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, status, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      users.ToView(user, h.now()),
	})
}
