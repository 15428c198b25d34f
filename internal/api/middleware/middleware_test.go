package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"Tether/internal/core/actor"
)

type stubVerifier struct {
	tokens map[string]actor.Actor
}

func (s stubVerifier) Verify(token string) (actor.Actor, error) {
	caller, ok := s.tokens[token]
	if !ok {
		return actor.Actor{}, errors.New("unknown token")
	}
	return caller, nil
}

func TestRequireAuth(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{tokens: map[string]actor.Actor{
		"good": {UserID: 7, Admin: true},
	}}, nil)

	var seen actor.Actor
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := GetActor(r)
		assert.True(t, ok)
		seen = caller
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), "AuthenticationRequired")
			}
		})
	}

	assert.Equal(t, actor.Actor{UserID: 7, Admin: true}, seen)
}

func TestGetActor_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetActor(req)
	assert.False(t, ok)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000"))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1003"))
}
