package interactions

import (
	"fmt"

	"Tether/internal/core/apperr"
)

var (
	// ErrInteractionNotFound indicates the requested interaction doesn't exist
	ErrInteractionNotFound = fmt.Errorf("interaction %w", apperr.ErrNotFound)

	// ErrInteractionExists indicates the pair already has an interaction, in either direction
	ErrInteractionExists = fmt.Errorf("interaction between these users already exists: %w", apperr.ErrConflict)

	// ErrNotAuthorized indicates the caller is not a participant of the interaction
	ErrNotAuthorized = fmt.Errorf("not authorized to modify this interaction: %w", apperr.ErrForbidden)
)
