package users

import (
	"context"

	"Tether/internal/core/actor"
	"Tether/internal/core/txn"
)

// Repository defines the interface for user data persistence.
// Mutating methods take an optional transaction; nil runs the statement on its own.
type Repository interface {
	// Create inserts a user and fills in ID and timestamps.
	// Returns ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, tx txn.Tx, user *User) error

	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// Update overwrites the mutable profile fields of an existing user
	Update(ctx context.Context, tx txn.Tx, user *User) error

	// Delete removes the user row only. Returns ErrUserNotFound when no row was deleted.
	// Dependents must already be gone; see the cascade package.
	Delete(ctx context.Context, tx txn.Tx, id int64) error
}

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AccountDeleter removes a user together with everything that references it
type AccountDeleter interface {
	DeleteUser(ctx context.Context, id int64) error
}

// Service defines the interface for user business logic
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, req LoginRequest) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, caller actor.Actor, id int64, req UpdateProfileRequest) (*User, error)

	// DeleteUser removes the account and cascades to all dependent entities.
	// Only the account owner or an administrator may call it.
	DeleteUser(ctx context.Context, caller actor.Actor, id int64) error
}
