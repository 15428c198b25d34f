package messages

import (
	"context"

	"Tether/internal/core/actor"
	"Tether/internal/core/interactions"
	"Tether/internal/core/txn"
)

// Service defines the business logic interface for direct messages
type Service interface {
	// SendMessage delivers a message from the caller.
	// Fails with ErrBlocked if the pair has a blocked interaction.
	SendMessage(ctx context.Context, caller actor.Actor, req SendMessageRequest) (*Message, error)

	// GetMessage returns a message the caller sent or received
	GetMessage(ctx context.Context, caller actor.Actor, id int64) (*Message, error)

	// ListConversation returns the messages exchanged between the caller and withUserID, oldest first
	ListConversation(ctx context.Context, caller actor.Actor, withUserID int64) ([]*Message, error)

	// EditMessage and DeleteMessage are restricted to the sender
	EditMessage(ctx context.Context, caller actor.Actor, id int64, req EditMessageRequest) (*Message, error)
	DeleteMessage(ctx context.Context, caller actor.Actor, id int64) error
}

// Repository defines the data access interface for messages.
// Mutating methods take an optional transaction; nil runs the statement on its own.
type Repository interface {
	Create(ctx context.Context, tx txn.Tx, message *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	GetAll(ctx context.Context) ([]*Message, error)

	// ListConversation returns messages in either direction between a and b, oldest first
	ListConversation(ctx context.Context, a, b int64) ([]*Message, error)

	Update(ctx context.Context, tx txn.Tx, message *Message) error
	Delete(ctx context.Context, tx txn.Tx, id int64) error

	// DeleteByUserID removes every message userID sent or received
	DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error)
}

// UserGuard checks that a user exists before a message references it
type UserGuard interface {
	RequireUser(ctx context.Context, id int64) error
}

// BlockLookup finds the interaction between two users, if any
type BlockLookup interface {
	GetBetweenUsers(ctx context.Context, a, b int64) (*interactions.Interaction, error)
}
