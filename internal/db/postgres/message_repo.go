package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Tether/internal/core/messages"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

type postgresMessageRepo struct {
	db *sql.DB
}

// NewMessageRepository creates a new PostgreSQL message repository
func NewMessageRepository(db *sql.DB) messages.Repository {
	return &postgresMessageRepo{db: db}
}

const messageColumns = `id, sender_id, receiver_id, text, created_at`

func scanMessage(row rowScanner) (*messages.Message, error) {
	m := &messages.Message{}
	if err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMessageRepo) Create(ctx context.Context, tx txn.Tx, message *messages.Message) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO messages (sender_id, receiver_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err = q.QueryRowContext(ctx, query, message.SenderID, message.ReceiverID, message.Text).
		Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return users.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

func (r *postgresMessageRepo) GetByID(ctx context.Context, id int64) (*messages.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	message, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, messages.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message %d: %w", id, err)
	}

	return message, nil
}

func (r *postgresMessageRepo) GetAll(ctx context.Context) ([]*messages.Message, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+messageColumns+` FROM messages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return collect(rows, scanMessage)
}

// ListConversation returns messages in either direction between a and b, oldest first
func (r *postgresMessageRepo) ListConversation(ctx context.Context, a, b int64) ([]*messages.Message, error) {
	query := `
		SELECT ` + messageColumns + ` FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	return collect(rows, scanMessage)
}

func (r *postgresMessageRepo) Update(ctx context.Context, tx txn.Tx, message *messages.Message) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE messages SET text = $2
		WHERE id = $1
		RETURNING sender_id, receiver_id, created_at`

	err = q.QueryRowContext(ctx, query, message.ID, message.Text).
		Scan(&message.SenderID, &message.ReceiverID, &message.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return messages.ErrMessageNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update message %d: %w", message.ID, err)
	}

	return nil
}

func (r *postgresMessageRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}
	if err := execDelete(ctx, q, `DELETE FROM messages WHERE id = $1`, id, messages.ErrMessageNotFound); err != nil {
		if errors.Is(err, messages.ErrMessageNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete message %d: %w", id, err)
	}
	return nil
}

func (r *postgresMessageRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	n, err := execBulkDelete(ctx, r.db, tx, `DELETE FROM messages WHERE sender_id = $1 OR receiver_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete messages of user %d: %w", userID, err)
	}
	return n, nil
}
