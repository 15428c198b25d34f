package users

import (
	"fmt"

	"Tether/internal/core/apperr"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)

	// ErrEmailTaken is returned when registering an email that belongs to another user
	ErrEmailTaken = fmt.Errorf("email already registered: %w", apperr.ErrConflict)

	// ErrInvalidCredentials is returned when an email/password pair does not match
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthorized)

	// ErrNotAuthorized is returned when the caller may not modify the account
	ErrNotAuthorized = fmt.Errorf("not authorized to modify this account: %w", apperr.ErrForbidden)
)
