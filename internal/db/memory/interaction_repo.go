package memory

import (
	"context"

	"Tether/internal/core/apperr"
	"Tether/internal/core/interactions"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

type memoryInteractionRepo struct {
	s *Store
}

// NewInteractionRepository creates an interaction repository backed by s
func NewInteractionRepository(s *Store) interactions.Repository {
	return &memoryInteractionRepo{s: s}
}

func (r *memoryInteractionRepo) between(a, b int64) (interactions.Interaction, bool) {
	for _, row := range r.s.interactions.rows {
		if row.Connects(a, b) {
			return row, true
		}
	}
	return interactions.Interaction{}, false
}

// Create checks the unordered pair and inserts under the same lock
func (r *memoryInteractionRepo) Create(ctx context.Context, tx txn.Tx, interaction *interactions.Interaction) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if interaction.User1ID == interaction.User2ID {
			return apperr.NewValidationError("user2Id", "must refer to a different user")
		}
		if !r.s.users.has(interaction.User1ID) || !r.s.users.has(interaction.User2ID) {
			return users.ErrUserNotFound
		}
		if _, ok := r.between(interaction.User1ID, interaction.User2ID); ok {
			return interactions.ErrInteractionExists
		}
		id, err := r.s.interactions.nextID(interaction.ID)
		if err != nil {
			return err
		}

		now := r.s.timestamp()
		row := *interaction
		row.ID = id
		row.CreatedAt = now
		row.UpdatedAt = now
		r.s.interactions.put(log, id, row)

		*interaction = row
		return nil
	})
}

func (r *memoryInteractionRepo) GetByID(ctx context.Context, id int64) (*interactions.Interaction, error) {
	var out *interactions.Interaction
	err := r.s.read(ctx, func() error {
		row, ok := r.s.interactions.get(id)
		if !ok {
			return interactions.ErrInteractionNotFound
		}
		out = &row
		return nil
	})
	return out, err
}

func (r *memoryInteractionRepo) GetAll(ctx context.Context) ([]*interactions.Interaction, error) {
	var out []*interactions.Interaction
	err := r.s.read(ctx, func() error {
		out = r.s.interactions.find(nil, interactionRowID)
		return nil
	})
	return out, err
}

func (r *memoryInteractionRepo) GetBetweenUsers(ctx context.Context, a, b int64) (*interactions.Interaction, error) {
	var out *interactions.Interaction
	err := r.s.read(ctx, func() error {
		row, ok := r.between(a, b)
		if !ok {
			return interactions.ErrInteractionNotFound
		}
		out = &row
		return nil
	})
	return out, err
}

func (r *memoryInteractionRepo) ListByUser(ctx context.Context, userID int64) ([]*interactions.Interaction, error) {
	var out []*interactions.Interaction
	err := r.s.read(ctx, func() error {
		out = r.s.interactions.find(func(i interactions.Interaction) bool { return i.Involves(userID) }, interactionRowID)
		return nil
	})
	return out, err
}

func (r *memoryInteractionRepo) ExistsBetweenUsers(ctx context.Context, a, b int64) (bool, error) {
	var ok bool
	err := r.s.read(ctx, func() error {
		_, ok = r.between(a, b)
		return nil
	})
	return ok, err
}

// Update changes the status only
func (r *memoryInteractionRepo) Update(ctx context.Context, tx txn.Tx, interaction *interactions.Interaction) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		row, ok := r.s.interactions.get(interaction.ID)
		if !ok {
			return interactions.ErrInteractionNotFound
		}
		if !row.Connects(interaction.User1ID, interaction.User2ID) {
			return apperr.NewValidationError("user2Id", "an interaction cannot move to another pair")
		}
		row.User1ID = interaction.User1ID
		row.User2ID = interaction.User2ID
		row.Status = interaction.Status
		row.UpdatedAt = r.s.timestamp()
		r.s.interactions.put(log, row.ID, row)

		*interaction = row
		return nil
	})
}

func (r *memoryInteractionRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.interactions.remove(log, id) {
			return interactions.ErrInteractionNotFound
		}
		return nil
	})
}

func (r *memoryInteractionRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	var n int64
	err := r.s.write(ctx, tx, func(log *undoLog) error {
		n = r.s.interactions.removeWhere(log, func(i interactions.Interaction) bool {
			return i.User1ID == userID || i.User2ID == userID
		})
		return nil
	})
	return n, err
}

func interactionRowID(i interactions.Interaction) int64 { return i.ID }
