package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Tether/internal/core/apperr"
	"Tether/internal/core/interactions"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

type postgresInteractionRepo struct {
	db *sql.DB
}

// NewInteractionRepository creates a new PostgreSQL interaction repository
func NewInteractionRepository(db *sql.DB) interactions.Repository {
	return &postgresInteractionRepo{db: db}
}

const interactionColumns = `id, user1_id, user2_id, status, created_at, updated_at`

// pairCondition matches (a, b) in either order; a is $1 and b is $2
const pairCondition = `((user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1))`

func scanInteraction(row rowScanner) (*interactions.Interaction, error) {
	i := &interactions.Interaction{}
	if err := row.Scan(&i.ID, &i.User1ID, &i.User2ID, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return i, nil
}

// Create inserts an interaction. The interactions_pair_key index covers both
// orders of the pair, so a concurrent reversed insert also fails.
func (r *postgresInteractionRepo) Create(ctx context.Context, tx txn.Tx, interaction *interactions.Interaction) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO interactions (user1_id, user2_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err = q.QueryRowContext(ctx, query, interaction.User1ID, interaction.User2ID, interaction.Status).
		Scan(&interaction.ID, &interaction.CreatedAt, &interaction.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return interactions.ErrInteractionExists
		case isForeignKeyViolation(err):
			return users.ErrUserNotFound
		case isCheckViolation(err):
			return apperr.NewValidationError("user2Id", "must refer to a different user")
		}
		return fmt.Errorf("failed to insert interaction: %w", err)
	}

	return nil
}

func (r *postgresInteractionRepo) GetByID(ctx context.Context, id int64) (*interactions.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM interactions WHERE id = $1`

	interaction, err := scanInteraction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interactions.ErrInteractionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interaction %d: %w", id, err)
	}

	return interaction, nil
}

func (r *postgresInteractionRepo) GetAll(ctx context.Context) ([]*interactions.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+interactionColumns+` FROM interactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return collect(rows, scanInteraction)
}

func (r *postgresInteractionRepo) GetBetweenUsers(ctx context.Context, a, b int64) (*interactions.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM interactions WHERE ` + pairCondition

	interaction, err := scanInteraction(r.db.QueryRowContext(ctx, query, a, b))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interactions.ErrInteractionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interaction between %d and %d: %w", a, b, err)
	}

	return interaction, nil
}

func (r *postgresInteractionRepo) ListByUser(ctx context.Context, userID int64) ([]*interactions.Interaction, error) {
	query := `
		SELECT ` + interactionColumns + ` FROM interactions
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions of user %d: %w", userID, err)
	}
	return collect(rows, scanInteraction)
}

func (r *postgresInteractionRepo) ExistsBetweenUsers(ctx context.Context, a, b int64) (bool, error) {
	ok, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM interactions WHERE `+pairCondition+`)`, a, b)
	if err != nil {
		return false, fmt.Errorf("failed to check interaction: %w", err)
	}
	return ok, nil
}

func (r *postgresInteractionRepo) Update(ctx context.Context, tx txn.Tx, interaction *interactions.Interaction) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE interactions SET user1_id = $2, user2_id = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		  AND LEAST(user1_id, user2_id) = LEAST($2::BIGINT, $3::BIGINT)
		  AND GREATEST(user1_id, user2_id) = GREATEST($2::BIGINT, $3::BIGINT)
		RETURNING created_at, updated_at`

	err = q.QueryRowContext(ctx, query, interaction.ID, interaction.User1ID, interaction.User2ID, interaction.Status).
		Scan(&interaction.CreatedAt, &interaction.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return interactions.ErrInteractionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update interaction %d: %w", interaction.ID, err)
	}

	return nil
}

func (r *postgresInteractionRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	q, err := conn(r.db, tx)
	if err != nil {
		return err
	}
	if err := execDelete(ctx, q, `DELETE FROM interactions WHERE id = $1`, id, interactions.ErrInteractionNotFound); err != nil {
		if errors.Is(err, interactions.ErrInteractionNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete interaction %d: %w", id, err)
	}
	return nil
}

func (r *postgresInteractionRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	n, err := execBulkDelete(ctx, r.db, tx, `DELETE FROM interactions WHERE user1_id = $1 OR user2_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete interactions of user %d: %w", userID, err)
	}
	return n, nil
}
