package messages

import (
	"fmt"

	"Tether/internal/core/apperr"
)

var (
	// ErrMessageNotFound indicates the requested message doesn't exist
	ErrMessageNotFound = fmt.Errorf("message %w", apperr.ErrNotFound)

	// ErrNotAuthorized indicates the caller may not read or change the message
	ErrNotAuthorized = fmt.Errorf("not authorized to access this message: %w", apperr.ErrForbidden)

	// ErrBlocked indicates a blocked interaction exists between sender and receiver
	ErrBlocked = fmt.Errorf("messaging between these users is blocked: %w", apperr.ErrForbidden)
)
