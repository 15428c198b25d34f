// Package cascade removes a root entity together with everything that
// references it, inside one transaction.
//
// Dependents are purged leaf-first so that a store enforcing foreign keys
// never sees a dangling reference: any failure rolls the whole unit back and
// the root stays fully intact.
package cascade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Tether/internal/core/apperr"
	"Tether/internal/core/posts"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

var (
	_ users.AccountDeleter = (*UserDeleter)(nil)
	_ posts.Deleter        = (*PostDeleter)(nil)
)

// RootStore is the store of the entity a cascade removes
type RootStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, tx txn.Tx, id int64) error
}

// PostStore is the post store as seen by the user cascade
type PostStore interface {
	RootStore
	DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)
}

// PostChildPurger removes rows that hang off posts: comments and reactions
type PostChildPurger interface {
	DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)
	DeleteByPostID(ctx context.Context, tx txn.Tx, postID int64) (int64, error)
	DeleteByPostOwnerID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)
}

// UserLinkPurger removes rows that reference a user on either side: interactions and messages
type UserLinkPurger interface {
	DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)
}

// step is one purge of a cascade; name appears in wrapped errors and logs
type step struct {
	name string
	run  func(ctx context.Context, tx txn.Tx, id int64) (int64, error)
}

// runSteps executes steps in order and returns the per-step counts
func runSteps(ctx context.Context, tx txn.Tx, id int64, steps []step) ([]slog.Attr, error) {
	attrs := make([]slog.Attr, 0, len(steps))
	for _, st := range steps {
		n, err := st.run(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", st.name, err)
		}
		attrs = append(attrs, slog.Int64(st.name, n))
	}
	return attrs, nil
}

// deleteRoot removes the root row. A root that vanished after its dependents
// were purged is a DeleteError, so the purge is rolled back.
func deleteRoot(ctx context.Context, tx txn.Tx, store RootStore, entity string, id int64) error {
	if err := store.Delete(ctx, tx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return &apperr.DeleteError{Entity: entity, ID: id}
		}
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}
	return nil
}

// requireRoot is the pre-transaction existence check
func requireRoot(ctx context.Context, store RootStore, id int64, notFound error) error {
	ok, err := store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}
	if !ok {
		return notFound
	}
	return nil
}

// UserDeleter removes a user with their posts, comments, reactions,
// interactions and messages
type UserDeleter struct {
	txm          txn.Manager
	users        RootStore
	posts        PostStore
	comments     PostChildPurger
	reactions    PostChildPurger
	interactions UserLinkPurger
	messages     UserLinkPurger
	logger       *slog.Logger
}

// UserDeleterDeps groups the stores a UserDeleter purges
type UserDeleterDeps struct {
	Users        RootStore
	Posts        PostStore
	Comments     PostChildPurger
	Reactions    PostChildPurger
	Interactions UserLinkPurger
	Messages     UserLinkPurger
}

// NewUserDeleter creates a user cascade over the given stores
func NewUserDeleter(txm txn.Manager, deps UserDeleterDeps, logger *slog.Logger) *UserDeleter {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserDeleter{
		txm:          txm,
		users:        deps.Users,
		posts:        deps.Posts,
		comments:     deps.Comments,
		reactions:    deps.Reactions,
		interactions: deps.Interactions,
		messages:     deps.Messages,
		logger:       logger,
	}
}

// DeleteUser removes user id and every row that references it.
//
// Returns users.ErrUserNotFound if the user does not exist, a
// *apperr.DeleteError if the user disappeared mid-cascade, or the first
// purge failure. On any error nothing is removed.
func (d *UserDeleter) DeleteUser(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := requireRoot(ctx, d.users, id, users.ErrUserNotFound); err != nil {
		return err
	}

	steps := []step{
		{"comments_by_user", d.comments.DeleteByUserID},
		{"comments_on_user_posts", d.comments.DeleteByPostOwnerID},
		{"reactions_by_user", d.reactions.DeleteByUserID},
		{"reactions_on_user_posts", d.reactions.DeleteByPostOwnerID},
		{"interactions", d.interactions.DeleteByUserID},
		{"messages", d.messages.DeleteByUserID},
		{"posts", d.posts.DeleteByUserID},
	}

	var counts []slog.Attr
	err := txn.Run(ctx, d.txm, d.logger, func(ctx context.Context, tx txn.Tx) error {
		var err error
		if counts, err = runSteps(ctx, tx, id, steps); err != nil {
			return err
		}
		return deleteRoot(ctx, tx, d.users, "user", id)
	})
	if err != nil {
		d.logger.Warn("user cascade rolled back",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	d.logger.LogAttrs(ctx, slog.LevelInfo, "user deleted with dependents",
		append([]slog.Attr{slog.Int64("user_id", id)}, counts...)...,
	)
	return nil
}

// PostDeleter removes a post with its comments and reactions
type PostDeleter struct {
	txm       txn.Manager
	posts     RootStore
	comments  PostChildPurger
	reactions PostChildPurger
	logger    *slog.Logger
}

// NewPostDeleter creates a post cascade over the given stores
func NewPostDeleter(txm txn.Manager, posts RootStore, comments, reactions PostChildPurger, logger *slog.Logger) *PostDeleter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostDeleter{
		txm:       txm,
		posts:     posts,
		comments:  comments,
		reactions: reactions,
		logger:    logger,
	}
}

// DeletePost removes post id with its comments and reactions.
// Error semantics match UserDeleter.DeleteUser, with posts.ErrNotFound for a missing post.
func (d *PostDeleter) DeletePost(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := requireRoot(ctx, d.posts, id, posts.ErrNotFound); err != nil {
		return err
	}

	steps := []step{
		{"comments", d.comments.DeleteByPostID},
		{"reactions", d.reactions.DeleteByPostID},
	}

	var counts []slog.Attr
	err := txn.Run(ctx, d.txm, d.logger, func(ctx context.Context, tx txn.Tx) error {
		var err error
		if counts, err = runSteps(ctx, tx, id, steps); err != nil {
			return err
		}
		return deleteRoot(ctx, tx, d.posts, "post", id)
	})
	if err != nil {
		d.logger.Warn("post cascade rolled back",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	d.logger.LogAttrs(ctx, slog.LevelInfo, "post deleted with dependents",
		append([]slog.Attr{slog.Int64("post_id", id)}, counts...)...,
	)
	return nil
}
