package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Tether/internal/core/reactions"
	"Tether/internal/core/txn"
)

type postgresReactionRepo struct {
	db *sql.DB
}

// NewReactionRepository creates a new PostgreSQL reaction repository
func NewReactionRepository(db *sql.DB) reactions.Repository {
	return &postgresReactionRepo{db: db}
}

const reactionColumns = `id, user_id, post_id, kind, created_at`

func scanReaction(row rowScanner) (*reactions.Reaction, error) {
	re := &reactions.Reaction{}
	if err := row.Scan(&re.ID, &re.UserID, &re.PostID, &re.Kind, &re.CreatedAt); err != nil {
		return nil, err
	}
	return re, nil
}

// Create inserts a reaction. The reactions_user_post_key constraint backs up
// the service-level uniqueness check against concurrent inserts.
func (r *postgresReactionRepo) Create(ctx context.Context, tx txn.Tx, reaction *reactions.Reaction) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reactions (user_id, post_id, kind)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err = q.QueryRowContext(ctx, query, reaction.UserID, reaction.PostID, reaction.Kind).
		Scan(&reaction.ID, &reaction.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return reactions.ErrReactionExists
		}
		if refErr := referenceError(err); refErr != nil {
			return refErr
		}
		return fmt.Errorf("failed to insert reaction: %w", err)
	}

	return nil
}

func (r *postgresReactionRepo) GetByID(ctx context.Context, id int64) (*reactions.Reaction, error) {
	query := `SELECT ` + reactionColumns + ` FROM reactions WHERE id = $1`

	reaction, err := scanReaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, reactions.ErrReactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reaction %d: %w", id, err)
	}

	return reaction, nil
}

func (r *postgresReactionRepo) GetAll(ctx context.Context) ([]*reactions.Reaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+reactionColumns+` FROM reactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}
	return collect(rows, scanReaction)
}

func (r *postgresReactionRepo) ListByPost(ctx context.Context, postID int64) ([]*reactions.Reaction, error) {
	query := `SELECT ` + reactionColumns + ` FROM reactions WHERE post_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions of post %d: %w", postID, err)
	}
	return collect(rows, scanReaction)
}

func (r *postgresReactionRepo) ExistsForUserAndPost(ctx context.Context, userID, postID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reactions WHERE user_id = $1 AND post_id = $2)`

	ok, err := exists(ctx, r.db, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check reaction: %w", err)
	}
	return ok, nil
}

func (r *postgresReactionRepo) Update(ctx context.Context, tx txn.Tx, reaction *reactions.Reaction) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE reactions SET kind = $2
		WHERE id = $1
		RETURNING user_id, post_id, created_at`

	err = q.QueryRowContext(ctx, query, reaction.ID, reaction.Kind).
		Scan(&reaction.UserID, &reaction.PostID, &reaction.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return reactions.ErrReactionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update reaction %d: %w", reaction.ID, err)
	}

	return nil
}

func (r *postgresReactionRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}
	if err := execDelete(ctx, q, `DELETE FROM reactions WHERE id = $1`, id, reactions.ErrReactionNotFound); err != nil {
		if errors.Is(err, reactions.ErrReactionNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete reaction %d: %w", id, err)
	}
	return nil
}

func (r *postgresReactionRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	n, err := execBulkDelete(ctx, r.db, tx, `DELETE FROM reactions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reactions by user %d: %w", userID, err)
	}
	return n, nil
}

func (r *postgresReactionRepo) DeleteByPostID(ctx context.Context, tx txn.Tx, postID int64) (int64, error) {
	n, err := execBulkDelete(ctx, r.db, tx, `DELETE FROM reactions WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reactions on post %d: %w", postID, err)
	}
	return n, nil
}

func (r *postgresReactionRepo) DeleteByPostOwnerID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	query := `DELETE FROM reactions WHERE post_id IN (SELECT id FROM posts WHERE user_id = $1)`

	n, err := execBulkDelete(ctx, r.db, tx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reactions on posts of user %d: %w", userID, err)
	}
	return n, nil
}
