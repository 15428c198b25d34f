// Package app wires repositories, guards, cascades and services into the
// set of domain services served over HTTP.
package app

import (
	"database/sql"
	"log/slog"

	"Tether/internal/api/routes"
	"Tether/internal/core/cascade"
	"Tether/internal/core/comments"
	"Tether/internal/core/guards"
	"Tether/internal/core/interactions"
	"Tether/internal/core/messages"
	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
	"Tether/internal/db/memory"
	"Tether/internal/db/postgres"
)

// Repositories is one storage backend's set of repositories plus its transaction manager
type Repositories struct {
	TxManager    txn.Manager
	Users        users.Repository
	Posts        posts.Repository
	Comments     comments.Repository
	Reactions    reactions.Repository
	Interactions interactions.Repository
	Messages     messages.Repository
}

// MemoryRepositories returns repositories backed by an in-process store
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		TxManager:    store,
		Users:        memory.NewUserRepository(store),
		Posts:        memory.NewPostRepository(store),
		Comments:     memory.NewCommentRepository(store),
		Reactions:    memory.NewReactionRepository(store),
		Interactions: memory.NewInteractionRepository(store),
		Messages:     memory.NewMessageRepository(store),
	}
}

// PostgresRepositories returns repositories backed by a PostgreSQL database
func PostgresRepositories(db *sql.DB) Repositories {
	return Repositories{
		TxManager:    postgres.NewTxManager(db),
		Users:        postgres.NewUserRepository(db),
		Posts:        postgres.NewPostRepository(db),
		Comments:     postgres.NewCommentRepository(db),
		Reactions:    postgres.NewReactionRepository(db),
		Interactions: postgres.NewInteractionRepository(db),
		Messages:     postgres.NewMessageRepository(db),
	}
}

// NewServices builds the domain services over repos
func NewServices(repos Repositories, hasher users.PasswordHasher, logger *slog.Logger) routes.Services {
	if logger == nil {
		logger = slog.Default()
	}

	guard := guards.New(repos.Users, repos.Posts, repos.Reactions, repos.Interactions)

	userDeleter := cascade.NewUserDeleter(repos.TxManager, cascade.UserDeleterDeps{
		Users:        repos.Users,
		Posts:        repos.Posts,
		Comments:     repos.Comments,
		Reactions:    repos.Reactions,
		Interactions: repos.Interactions,
		Messages:     repos.Messages,
	}, logger.With(slog.String("component", "user_cascade")))

	postDeleter := cascade.NewPostDeleter(repos.TxManager, repos.Posts, repos.Comments, repos.Reactions,
		logger.With(slog.String("component", "post_cascade")))

	return routes.Services{
		Users:        users.NewUserService(repos.Users, hasher, userDeleter, logger),
		Posts:        posts.NewPostService(repos.Posts, guard, postDeleter, logger),
		Comments:     comments.NewCommentService(repos.Comments, guard, repos.Posts, logger),
		Reactions:    reactions.NewService(repos.Reactions, guard, logger),
		Interactions: interactions.NewService(repos.Interactions, guard, logger),
		Messages:     messages.NewService(repos.Messages, guard, repos.Interactions, logger),
	}
}
