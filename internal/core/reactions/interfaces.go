package reactions

import (
	"context"

	"Tether/internal/core/actor"
	"Tether/internal/core/txn"
)

// Service defines the business logic interface for reactions
type Service interface {
	// React records the caller's reaction to a post
	// Flow: Validate -> Require user -> Require post -> Ensure no existing reaction -> Insert
	React(ctx context.Context, caller actor.Actor, req CreateReactionRequest) (*Reaction, error)

	GetReaction(ctx context.Context, id int64) (*Reaction, error)
	ListPostReactions(ctx context.Context, postID int64) ([]*Reaction, error)

	// ChangeReaction switches the kind of a reaction owned by the caller
	ChangeReaction(ctx context.Context, caller actor.Actor, id int64, req UpdateReactionRequest) (*Reaction, error)

	// RemoveReaction deletes a reaction owned by the caller
	RemoveReaction(ctx context.Context, caller actor.Actor, id int64) error
}

// Repository defines the data access interface for reactions.
// Mutating methods take an optional transaction; nil runs the statement on its own.
type Repository interface {
	// Create inserts a new reaction and fills in ID and CreatedAt.
	// Returns ErrReactionExists if the store already holds one for (UserID, PostID).
	Create(ctx context.Context, tx txn.Tx, reaction *Reaction) error

	GetByID(ctx context.Context, id int64) (*Reaction, error)
	GetAll(ctx context.Context) ([]*Reaction, error)
	ListByPost(ctx context.Context, postID int64) ([]*Reaction, error)

	// ExistsForUserAndPost reports whether userID has already reacted to postID
	ExistsForUserAndPost(ctx context.Context, userID, postID int64) (bool, error)

	Update(ctx context.Context, tx txn.Tx, reaction *Reaction) error

	// Delete removes a single reaction. Returns ErrReactionNotFound when no row was deleted.
	Delete(ctx context.Context, tx txn.Tx, id int64) error

	// DeleteByUserID removes every reaction made by userID
	DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)

	// DeleteByPostID removes every reaction on postID
	DeleteByPostID(ctx context.Context, tx txn.Tx, postID int64) (int64, error)

	// DeleteByPostOwnerID removes every reaction on any post owned by userID
	DeleteByPostOwnerID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)
}

// Guard runs the existence and uniqueness checks that precede an insert
type Guard interface {
	RequireUser(ctx context.Context, id int64) error
	RequirePost(ctx context.Context, id int64) error
	EnsureNoReaction(ctx context.Context, userID, postID int64) error
}
