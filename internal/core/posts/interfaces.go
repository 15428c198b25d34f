package posts

import (
	"context"

	"Tether/internal/core/actor"
	"Tether/internal/core/txn"
)

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost creates a post authored by the caller
	// Flow: Validate -> Require author -> Insert
	CreatePost(ctx context.Context, caller actor.Actor, req CreatePostRequest) (*Post, error)

	GetPost(ctx context.Context, id int64) (*Post, error)
	ListPosts(ctx context.Context) ([]*Post, error)

	// ListUserPosts returns the posts of a user, or a NotFound error if the user does not exist
	ListUserPosts(ctx context.Context, userID int64) ([]*Post, error)

	// UpdatePost edits the body of a post owned by the caller
	UpdatePost(ctx context.Context, caller actor.Actor, id int64, req UpdatePostRequest) (*Post, error)

	// DeletePost removes a post with its comments and reactions.
	// The author or an administrator may delete a post.
	DeletePost(ctx context.Context, caller actor.Actor, id int64) error
}

// Repository defines the data access interface for posts.
// Mutating methods take an optional transaction; nil runs the statement on its own.
type Repository interface {
	// Create inserts a post and fills in ID and CreatedAt
	Create(ctx context.Context, tx txn.Tx, post *Post) error

	GetByID(ctx context.Context, id int64) (*Post, error)
	GetAll(ctx context.Context) ([]*Post, error)
	ListByUser(ctx context.Context, userID int64) ([]*Post, error)
	Exists(ctx context.Context, id int64) (bool, error)

	Update(ctx context.Context, tx txn.Tx, post *Post) error

	// Delete removes the post row only. Returns ErrNotFound when no row was deleted.
	Delete(ctx context.Context, tx txn.Tx, id int64) error

	// DeleteByUserID removes every post owned by userID and returns how many were removed
	DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)
}

// UserGuard verifies that a referenced user exists
type UserGuard interface {
	RequireUser(ctx context.Context, id int64) error
}

// Deleter removes a post together with its comments and reactions
type Deleter interface {
	DeletePost(ctx context.Context, id int64) error
}
