package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"Tether/internal/api/middleware"
	"Tether/internal/core/actor"
	"Tether/internal/core/apperr"
	"Tether/internal/core/users"
)

// MockUserService is a mock implementation of users.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req users.RegisterRequest) (*users.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, req users.LoginRequest) (*users.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*users.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*users.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, caller actor.Actor, id int64, req users.UpdateProfileRequest) (*users.User, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, caller actor.Actor, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

// serve routes the request through chi so that {id} resolves
func serve(h http.HandlerFunc, method, target string, caller *actor.Actor, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, "/users/{id}", h)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if caller != nil {
		req = req.WithContext(middleware.SetTestActor(req.Context(), *caller))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleDelete_Success(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewHandler(mockService)

	caller := actor.Actor{UserID: 7}
	mockService.On("DeleteUser", mock.Anything, caller, int64(7)).Return(nil)

	w := serve(handler.HandleDelete, http.MethodDelete, "/users/7", &caller, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestHandleDelete_Unauthenticated(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewHandler(mockService)

	w := serve(handler.HandleDelete, http.MethodDelete, "/users/7", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AuthRequired")
	mockService.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleDelete_ErrorMapping(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		wantBody string
		want     int
	}{
		{name: "not found", err: users.ErrUserNotFound, want: http.StatusNotFound, wantBody: "NotFound"},
		{name: "forbidden", err: users.ErrNotAuthorized, want: http.StatusForbidden, wantBody: "NotAuthorized"},
		{name: "root vanished", err: &apperr.DeleteError{Entity: "user", ID: 7}, want: http.StatusInternalServerError, wantBody: "DeleteFailed"},
		{name: "fault", err: assert.AnError, want: http.StatusInternalServerError, wantBody: "InternalServerError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockUserService)
			handler := NewHandler(mockService)
			caller := actor.Actor{UserID: 7}
			mockService.On("DeleteUser", mock.Anything, caller, int64(7)).Return(tt.err)

			w := serve(handler.HandleDelete, http.MethodDelete, "/users/7", &caller, "")

			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandleDelete_BadID(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewHandler(mockService)
	caller := actor.Actor{UserID: 7}

	w := serve(handler.HandleDelete, http.MethodDelete, "/users/abc", &caller, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleGet_ComputesAge(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewHandler(mockService)
	handler.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	mockService.On("GetUser", mock.Anything, int64(3)).Return(&users.User{
		ID:          3,
		Name:        "Ann",
		DateOfBirth: time.Date(1990, 6, 2, 0, 0, 0, 0, time.UTC),
		Role:        users.RoleUser,
	}, nil)

	w := serve(handler.HandleGet, http.MethodGet, "/users/3", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"age":33`)
	assert.Contains(t, w.Body.String(), `"dateOfBirth":"1990-06-02"`)
}

func TestHandleUpdateProfile(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewHandler(mockService)
	caller := actor.Actor{UserID: 3}

	mockService.On("UpdateProfile", mock.Anything, caller, int64(3), mock.MatchedBy(func(req users.UpdateProfileRequest) bool {
		return req.Info != nil && *req.Info == "hello" && req.Name == nil
	})).Return(&users.User{ID: 3, Info: "hello"}, nil)

	w := serve(handler.HandleUpdateProfile, http.MethodPut, "/users/3", &caller, `{"info":"hello"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)

	w = serve(handler.HandleUpdateProfile, http.MethodPut, "/users/3", &caller, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
