package reactions

import (
	"fmt"

	"Tether/internal/core/apperr"
)

var (
	// ErrReactionNotFound indicates the requested reaction doesn't exist
	ErrReactionNotFound = fmt.Errorf("reaction %w", apperr.ErrNotFound)

	// ErrReactionExists indicates the user already reacted to the post
	ErrReactionExists = fmt.Errorf("user can have only one reaction per post: %w", apperr.ErrConflict)

	// ErrNotAuthorized indicates the user does not own the reaction
	ErrNotAuthorized = fmt.Errorf("not authorized to modify this reaction: %w", apperr.ErrForbidden)
)
