package interactions

import (
	"context"

	"Tether/internal/core/actor"
	"Tether/internal/core/txn"
)

// Service defines the business logic interface for interactions
type Service interface {
	// CreateInteraction relates two distinct users. The caller must be User1ID unless admin.
	// Flow: Validate -> Require both users -> Ensure no interaction in either direction -> Insert
	CreateInteraction(ctx context.Context, caller actor.Actor, req CreateInteractionRequest) (*Interaction, error)

	GetInteraction(ctx context.Context, id int64) (*Interaction, error)

	// GetBetween returns the interaction between a and b regardless of argument order
	GetBetween(ctx context.Context, a, b int64) (*Interaction, error)

	ListUserInteractions(ctx context.Context, userID int64) ([]*Interaction, error)

	// UpdateStatus and DeleteInteraction are restricted to the pair's participants.
	// A blocked interaction may only be changed or removed by the user who set the block.
	UpdateStatus(ctx context.Context, caller actor.Actor, id int64, req UpdateStatusRequest) (*Interaction, error)
	DeleteInteraction(ctx context.Context, caller actor.Actor, id int64) error
}

// Repository defines the data access interface for interactions.
// Mutating methods take an optional transaction; nil runs the statement on its own.
type Repository interface {
	// Create inserts a new interaction and fills in ID and timestamps.
	// Returns ErrInteractionExists if the pair already has one, in either order.
	Create(ctx context.Context, tx txn.Tx, interaction *Interaction) error

	GetByID(ctx context.Context, id int64) (*Interaction, error)
	GetAll(ctx context.Context) ([]*Interaction, error)

	// GetBetweenUsers is symmetric in a and b
	GetBetweenUsers(ctx context.Context, a, b int64) (*Interaction, error)

	// ListByUser returns interactions where userID is either side
	ListByUser(ctx context.Context, userID int64) ([]*Interaction, error)

	// ExistsBetweenUsers is symmetric in a and b
	ExistsBetweenUsers(ctx context.Context, a, b int64) (bool, error)

	// Update stores Status and the order of the pair. The pair itself cannot change.
	Update(ctx context.Context, tx txn.Tx, interaction *Interaction) error
	Delete(ctx context.Context, tx txn.Tx, id int64) error

	// DeleteByUserID removes every interaction where userID is either side
	DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)
}

// Guard runs the existence and uniqueness checks that precede an insert
type Guard interface {
	RequireUser(ctx context.Context, id int64) error
	EnsureNoInteraction(ctx context.Context, a, b int64) error
}
