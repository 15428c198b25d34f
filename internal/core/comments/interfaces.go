package comments

import (
	"context"

	"Tether/internal/core/actor"
	"Tether/internal/core/posts"
	"Tether/internal/core/txn"
)

// Repository defines the data access interface for comments.
// Mutating methods take an optional transaction; nil runs the statement on its own.
type Repository interface {
	// Create inserts a new comment and fills in ID and CreatedAt
	Create(ctx context.Context, tx txn.Tx, comment *Comment) error

	GetByID(ctx context.Context, id int64) (*Comment, error)
	GetAll(ctx context.Context) ([]*Comment, error)

	// ListByPost retrieves the comments on a post, oldest first
	ListByPost(ctx context.Context, postID int64) ([]*Comment, error)

	// Update modifies the text of an existing comment
	Update(ctx context.Context, tx txn.Tx, comment *Comment) error

	// Delete removes a single comment. Returns ErrCommentNotFound when no row was deleted.
	Delete(ctx context.Context, tx txn.Tx, id int64) error

	// DeleteByUserID removes every comment authored by userID
	DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)

	// DeleteByPostID removes every comment on postID
	DeleteByPostID(ctx context.Context, tx txn.Tx, postID int64) (int64, error)

	// DeleteByPostOwnerID removes every comment on any post owned by userID,
	// whoever wrote it
	DeleteByPostOwnerID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)
}

// Guard verifies referenced entities before a comment is written
type Guard interface {
	RequireUser(ctx context.Context, id int64) error
	RequirePost(ctx context.Context, id int64) error
}

// PostLookup resolves the post a comment belongs to
type PostLookup interface {
	GetByID(ctx context.Context, id int64) (*posts.Post, error)
}

// Service defines the business logic interface for comments
type Service interface {
	// CreateComment adds a comment by the caller to a post
	// Flow: Validate -> Require user -> Require post -> Insert
	CreateComment(ctx context.Context, caller actor.Actor, req CreateCommentRequest) (*Comment, error)

	GetComment(ctx context.Context, id int64) (*Comment, error)
	ListPostComments(ctx context.Context, postID int64) ([]*Comment, error)

	// UpdateComment edits a comment; only its author may do so
	UpdateComment(ctx context.Context, caller actor.Actor, id int64, req UpdateCommentRequest) (*Comment, error)

	// DeleteComment removes a comment. Its author, the owner of the post
	// it replies to, or an administrator may delete it.
	DeleteComment(ctx context.Context, caller actor.Actor, id int64) error
}
