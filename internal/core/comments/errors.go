package comments

import (
	"fmt"

	"Tether/internal/core/apperr"
)

var (
	// ErrCommentNotFound indicates the requested comment doesn't exist
	ErrCommentNotFound = fmt.Errorf("comment %w", apperr.ErrNotFound)

	// ErrNotAuthorized indicates the user is not authorized to perform this action
	ErrNotAuthorized = fmt.Errorf("not authorized to modify this comment: %w", apperr.ErrForbidden)
)
