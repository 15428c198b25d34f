package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"Tether/internal/core/actor"
	"Tether/internal/core/apperr"
	"Tether/internal/core/validate"
)

const (
	maxNameLength  = 50
	maxInfoLength  = 500
	maxEmailLength = 254

	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
)

type userService struct {
	userRepo Repository
	hasher   PasswordHasher
	deleter  AccountDeleter
	logger   *slog.Logger
	now      func() time.Time
}

// NewUserService creates a new user service
func NewUserService(userRepo Repository, hasher PasswordHasher, deleter AccountDeleter, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		deleter:  deleter,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a new account with the default role
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.LastName = strings.TrimSpace(req.LastName)

	dob, err := s.validateRegisterRequest(req)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:         req.Name,
		LastName:     req.LastName,
		DateOfBirth:  dob,
		Info:         req.Info,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         RoleUser,
	}

	// Repository will handle duplicate constraint errors
	if err := s.userRepo.Create(ctx, nil, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Authenticate resolves an email/password pair to a user
func (s *userService) Authenticate(ctx context.Context, req LoginRequest) (*User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id int64) (*User, error) {
	if err := validate.ID("id", id); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns all users ordered by ID
func (s *userService) ListUsers(ctx context.Context) ([]*User, error) {
	return s.userRepo.GetAll(ctx)
}

// UpdateProfile applies the non-nil fields of req to the user's profile
func (s *userService) UpdateProfile(ctx context.Context, caller actor.Actor, id int64, req UpdateProfileRequest) (*User, error) {
	if !caller.CanManage(id) {
		return nil, ErrNotAuthorized
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validate.Text("name", name, maxNameLength); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if req.LastName != nil {
		lastName := strings.TrimSpace(*req.LastName)
		if err := validate.Text("lastName", lastName, maxNameLength); err != nil {
			return nil, err
		}
		user.LastName = lastName
	}
	if req.DateOfBirth != nil {
		dob, err := s.parseDateOfBirth(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		user.DateOfBirth = dob
	}
	if req.Info != nil {
		if err := validate.OptionalText("info", *req.Info, maxInfoLength); err != nil {
			return nil, err
		}
		user.Info = *req.Info
	}

	if err := s.userRepo.Update(ctx, nil, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes the account and everything that references it
func (s *userService) DeleteUser(ctx context.Context, caller actor.Actor, id int64) error {
	if err := validate.ID("id", id); err != nil {
		return err
	}
	if !caller.CanManage(id) {
		return ErrNotAuthorized
	}

	if err := s.deleter.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted",
		slog.Int64("user_id", id),
		slog.Int64("deleted_by", caller.UserID),
	)
	return nil
}

func (s *userService) validateRegisterRequest(req RegisterRequest) (time.Time, error) {
	if err := validate.Text("name", req.Name, maxNameLength); err != nil {
		return time.Time{}, err
	}
	if err := validate.Text("lastName", req.LastName, maxNameLength); err != nil {
		return time.Time{}, err
	}
	if err := validate.OptionalText("info", req.Info, maxInfoLength); err != nil {
		return time.Time{}, err
	}
	if len(req.Email) > maxEmailLength {
		return time.Time{}, apperr.NewValidationError("email", "is too long")
	}
	if err := validate.Email("email", req.Email); err != nil {
		return time.Time{}, err
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		return time.Time{}, apperr.NewValidationError("password",
			fmt.Sprintf("must be between %d and %d characters", minPasswordLength, maxPasswordLength))
	}
	return s.parseDateOfBirth(req.DateOfBirth)
}

func (s *userService) parseDateOfBirth(raw string) (time.Time, error) {
	dob, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperr.NewValidationError("dateOfBirth", "must be a date formatted as YYYY-MM-DD")
	}
	if dob.After(s.now()) {
		return time.Time{}, apperr.NewValidationError("dateOfBirth", "must not be in the future")
	}
	return dob, nil
}
