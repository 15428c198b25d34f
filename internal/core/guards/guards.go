// Package guards holds the read-only checks that run before an insert:
// existence of referenced users and posts, and the uniqueness of reactions
// and interactions.
//
// Guards take no locks and join no transaction. A concurrent insert can
// still slip in between a guard and the insert it protects; the stores
// enforce the same uniqueness and report it as the same Conflict.
package guards

import (
	"context"
	"fmt"

	"Tether/internal/core/comments"
	"Tether/internal/core/interactions"
	"Tether/internal/core/messages"
	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
	"Tether/internal/core/users"
)

// UserChecker reports whether a user exists
type UserChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// PostChecker reports whether a post exists
type PostChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// ReactionChecker reports whether a user already reacted to a post
type ReactionChecker interface {
	ExistsForUserAndPost(ctx context.Context, userID, postID int64) (bool, error)
}

// InteractionChecker reports whether two users already have an interaction.
// Implementations must treat (a, b) and (b, a) as the same pair.
type InteractionChecker interface {
	ExistsBetweenUsers(ctx context.Context, a, b int64) (bool, error)
}

var (
	_ posts.UserGuard    = (*Guard)(nil)
	_ comments.Guard     = (*Guard)(nil)
	_ reactions.Guard    = (*Guard)(nil)
	_ interactions.Guard = (*Guard)(nil)
	_ messages.UserGuard = (*Guard)(nil)
)

// Guard bundles the pre-insert checks consumed by the domain services
type Guard struct {
	users        UserChecker
	posts        PostChecker
	reactions    ReactionChecker
	interactions InteractionChecker
}

// New creates a Guard over the given checkers
func New(users UserChecker, posts PostChecker, reactions ReactionChecker, interactions InteractionChecker) *Guard {
	return &Guard{
		users:        users,
		posts:        posts,
		reactions:    reactions,
		interactions: interactions,
	}
}

// RequireUser fails with users.ErrUserNotFound if id does not exist
func (g *Guard) RequireUser(ctx context.Context, id int64) error {
	ok, err := g.users.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", id, err)
	}
	if !ok {
		return users.ErrUserNotFound
	}
	return nil
}

// RequirePost fails with posts.ErrNotFound if id does not exist
func (g *Guard) RequirePost(ctx context.Context, id int64) error {
	ok, err := g.posts.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check post %d: %w", id, err)
	}
	if !ok {
		return posts.ErrNotFound
	}
	return nil
}

// EnsureNoReaction fails with reactions.ErrReactionExists if userID already reacted to postID
func (g *Guard) EnsureNoReaction(ctx context.Context, userID, postID int64) error {
	exists, err := g.reactions.ExistsForUserAndPost(ctx, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to check existing reaction: %w", err)
	}
	if exists {
		return reactions.ErrReactionExists
	}
	return nil
}

// EnsureNoInteraction fails with interactions.ErrInteractionExists if a and b
// already have an interaction, in either direction
func (g *Guard) EnsureNoInteraction(ctx context.Context, a, b int64) error {
	exists, err := g.interactions.ExistsBetweenUsers(ctx, a, b)
	if err != nil {
		return fmt.Errorf("failed to check existing interaction: %w", err)
	}
	if exists {
		return interactions.ErrInteractionExists
	}
	return nil
}
