package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Tether/internal/core/posts"
	"Tether/internal/core/txn"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

func scanPost(row rowScanner) (*posts.Post, error) {
	post := &posts.Post{}
	if err := row.Scan(&post.ID, &post.UserID, &post.Text, &post.CreatedAt); err != nil {
		return nil, err
	}
	return post, nil
}

// Create inserts a new post. A missing author is reported as ErrAuthorNotFound.
func (r *postgresPostRepo) Create(ctx context.Context, tx txn.Tx, post *posts.Post) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (user_id, text)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err = q.QueryRowContext(ctx, query, post.UserID, post.Text).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return posts.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := `SELECT id, user_id, text, created_at FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}

	return post, nil
}

// GetAll returns every post, newest first
func (r *postgresPostRepo) GetAll(ctx context.Context) ([]*posts.Post, error) {
	query := `SELECT id, user_id, text, created_at FROM posts ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return collect(rows, scanPost)
}

// ListByUser returns the posts of userID, newest first
func (r *postgresPostRepo) ListByUser(ctx context.Context, userID int64) ([]*posts.Post, error) {
	query := `
		SELECT id, user_id, text, created_at FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts of user %d: %w", userID, err)
	}
	return collect(rows, scanPost)
}

func (r *postgresPostRepo) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check post %d: %w", id, err)
	}
	return ok, nil
}

// Update changes the text of a post
func (r *postgresPostRepo) Update(ctx context.Context, tx txn.Tx, post *posts.Post) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE posts SET text = $2
		WHERE id = $1
		RETURNING user_id, created_at`

	err = q.QueryRowContext(ctx, query, post.ID, post.Text).Scan(&post.UserID, &post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return posts.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update post %d: %w", post.ID, err)
	}

	return nil
}

func (r *postgresPostRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}
	if err := execDelete(ctx, q, `DELETE FROM posts WHERE id = $1`, id, posts.ErrNotFound); err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return nil
}

func (r *postgresPostRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	n, err := execBulkDelete(ctx, r.db, tx, `DELETE FROM posts WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts of user %d: %w", userID, err)
	}
	return n, nil
}
