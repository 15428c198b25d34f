package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Tether/internal/core/comments"
	"Tether/internal/core/posts"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

const commentColumns = `id, user_id, post_id, text, created_at`

func scanComment(row rowScanner) (*comments.Comment, error) {
	c := &comments.Comment{}
	if err := row.Scan(&c.ID, &c.UserID, &c.PostID, &c.Text, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// referenceError maps a foreign key violation on insert to the missing parent
func referenceError(err error) error {
	pe, ok := pqErr(err)
	if !ok || pe.Code != codeForeignKeyViolation {
		return nil
	}
	switch pe.Constraint {
	case "comments_post_id_fkey", "reactions_post_id_fkey":
		return posts.ErrNotFound
	default:
		return users.ErrUserNotFound
	}
}

func (r *postgresCommentRepo) Create(ctx context.Context, tx txn.Tx, comment *comments.Comment) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO comments (user_id, post_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err = q.QueryRowContext(ctx, query, comment.UserID, comment.PostID, comment.Text).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if refErr := referenceError(err); refErr != nil {
			return refErr
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

func (r *postgresCommentRepo) GetByID(ctx context.Context, id int64) (*comments.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %d: %w", id, err)
	}

	return comment, nil
}

func (r *postgresCommentRepo) GetAll(ctx context.Context) ([]*comments.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return collect(rows, scanComment)
}

// ListByPost returns the comments on postID, oldest first
func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of post %d: %w", postID, err)
	}
	return collect(rows, scanComment)
}

func (r *postgresCommentRepo) Update(ctx context.Context, tx txn.Tx, comment *comments.Comment) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE comments SET text = $2
		WHERE id = $1
		RETURNING user_id, post_id, created_at`

	err = q.QueryRowContext(ctx, query, comment.ID, comment.Text).
		Scan(&comment.UserID, &comment.PostID, &comment.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return comments.ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", comment.ID, err)
	}

	return nil
}

func (r *postgresCommentRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}
	if err := execDelete(ctx, q, `DELETE FROM comments WHERE id = $1`, id, comments.ErrCommentNotFound); err != nil {
		if errors.Is(err, comments.ErrCommentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return nil
}

func (r *postgresCommentRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	n, err := execBulkDelete(ctx, r.db, tx, `DELETE FROM comments WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments by user %d: %w", userID, err)
	}
	return n, nil
}

func (r *postgresCommentRepo) DeleteByPostID(ctx context.Context, tx txn.Tx, postID int64) (int64, error) {
	n, err := execBulkDelete(ctx, r.db, tx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments on post %d: %w", postID, err)
	}
	return n, nil
}

func (r *postgresCommentRepo) DeleteByPostOwnerID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	query := `DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE user_id = $1)`

	n, err := execBulkDelete(ctx, r.db, tx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments on posts of user %d: %w", userID, err)
	}
	return n, nil
}
