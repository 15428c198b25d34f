// Package apperr defines the error kinds shared by every domain package.
//
// Domain packages wrap one of the kind sentinels below so that callers can
// classify any error with errors.Is without knowing which entity produced it:
//
//	var ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)
//
// Errors that wrap none of the kinds are faults (database, transport) and are
// surfaced as internal errors.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds
var (
	// ErrNotFound indicates a referenced entity does not exist at lookup time
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an insert or update would violate a uniqueness invariant
	ErrConflict = errors.New("conflict")

	// ErrDeleteFailed indicates the root of a cascade vanished before its final delete
	ErrDeleteFailed = errors.New("delete failed")

	// ErrForbidden indicates the caller does not own the entity it tried to mutate
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized indicates the caller could not be authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalid indicates the input failed shape validation
	ErrInvalid = errors.New("invalid input")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// Is reports ValidationError as an ErrInvalid kind
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// DeleteError is returned when the final delete of a cascade affects no rows.
// The dependents were already purged inside the same transaction, so the
// whole cascade is rolled back rather than reported as success.
type DeleteError struct {
	Entity string
	ID     int64
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete %s %d: no rows affected", e.Entity, e.ID)
}

// Is reports DeleteError as an ErrDeleteFailed kind
func (e *DeleteError) Is(target error) bool {
	return target == ErrDeleteFailed
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict/already exists error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsDeleteFailed checks if an error is a cascade root delete failure
func IsDeleteFailed(err error) bool {
	return errors.Is(err, ErrDeleteFailed)
}

// IsForbidden checks if an error is an ownership violation
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnauthorized checks if an error is an authentication failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalid)
}
