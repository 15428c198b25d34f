package posts

import (
	"fmt"

	"Tether/internal/core/apperr"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post is not found by ID
	ErrNotFound = fmt.Errorf("post %w", apperr.ErrNotFound)

	// ErrAuthorNotFound is returned when the post's author does not exist
	ErrAuthorNotFound = fmt.Errorf("post author %w", apperr.ErrNotFound)

	// ErrNotAuthorized is returned when the caller does not own the post
	ErrNotAuthorized = fmt.Errorf("user not authorized to modify this post: %w", apperr.ErrForbidden)
)
