package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

const userColumns = `id, name, last_name, date_of_birth, info, email, password_hash, role, created_at, updated_at`

func scanUser(row rowScanner) (*users.User, error) {
	user := &users.User{}
	var dob sql.NullTime
	err := row.Scan(&user.ID, &user.Name, &user.LastName, &dob, &user.Info,
		&user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.DateOfBirth = dob.Time
	return user, nil
}

// nullDate stores an unset date of birth as NULL
func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, tx txn.Tx, user *users.User) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (name, last_name, date_of_birth, info, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err = q.QueryRowContext(ctx, query,
		user.Name, user.LastName, nullDate(user.DateOfBirth), user.Info,
		user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *postgresUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email, ignoring case
func (r *postgresUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetAll returns every user ordered by ID
func (r *postgresUserRepo) GetAll(ctx context.Context) ([]*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return collect(rows, scanUser)
}

func (r *postgresUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", id, err)
	}
	return ok, nil
}

// Update overwrites the mutable columns of a user and refreshes updated_at
func (r *postgresUserRepo) Update(ctx context.Context, tx txn.Tx, user *users.User) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET name = $2, last_name = $3, date_of_birth = $4, info = $5,
			email = $6, password_hash = $7, role = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err = q.QueryRowContext(ctx, query,
		user.ID, user.Name, user.LastName, nullDate(user.DateOfBirth), user.Info,
		user.Email, user.PasswordHash, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return users.ErrUserNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrEmailTaken
		}
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}

	return nil
}

// Delete removes the user row only. Dependents must already be gone: the
// foreign keys are RESTRICT, so a referenced user fails with a violation.
func (r *postgresUserRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}
	if err := execDelete(ctx, q, `DELETE FROM users WHERE id = $1`, id, users.ErrUserNotFound); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
