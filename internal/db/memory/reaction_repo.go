package memory

import (
	"context"

	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

type memoryReactionRepo struct {
	s *Store
}

// NewReactionRepository creates a reaction repository backed by s
func NewReactionRepository(s *Store) reactions.Repository {
	return &memoryReactionRepo{s: s}
}

func (r *memoryReactionRepo) reacted(userID, postID int64) bool {
	return r.s.reactions.exists(func(re reactions.Reaction) bool {
		return re.UserID == userID && re.PostID == postID
	})
}

// Create checks and inserts under the same lock, so two concurrent reactions
// by one user on one post cannot both succeed
func (r *memoryReactionRepo) Create(ctx context.Context, tx txn.Tx, reaction *reactions.Reaction) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.users.has(reaction.UserID) {
			return users.ErrUserNotFound
		}
		if !r.s.posts.has(reaction.PostID) {
			return posts.ErrNotFound
		}
		if r.reacted(reaction.UserID, reaction.PostID) {
			return reactions.ErrReactionExists
		}
		id, err := r.s.reactions.nextID(reaction.ID)
		if err != nil {
			return err
		}

		row := *reaction
		row.ID = id
		row.CreatedAt = r.s.timestamp()
		r.s.reactions.put(log, id, row)

		*reaction = row
		return nil
	})
}

func (r *memoryReactionRepo) GetByID(ctx context.Context, id int64) (*reactions.Reaction, error) {
	var out *reactions.Reaction
	err := r.s.read(ctx, func() error {
		row, ok := r.s.reactions.get(id)
		if !ok {
			return reactions.ErrReactionNotFound
		}
		out = &row
		return nil
	})
	return out, err
}

func (r *memoryReactionRepo) GetAll(ctx context.Context) ([]*reactions.Reaction, error) {
	var out []*reactions.Reaction
	err := r.s.read(ctx, func() error {
		out = r.s.reactions.find(nil, reactionRowID)
		return nil
	})
	return out, err
}

func (r *memoryReactionRepo) ListByPost(ctx context.Context, postID int64) ([]*reactions.Reaction, error) {
	var out []*reactions.Reaction
	err := r.s.read(ctx, func() error {
		out = r.s.reactions.find(func(re reactions.Reaction) bool { return re.PostID == postID }, reactionRowID)
		return nil
	})
	return out, err
}

func (r *memoryReactionRepo) ExistsForUserAndPost(ctx context.Context, userID, postID int64) (bool, error) {
	var ok bool
	err := r.s.read(ctx, func() error {
		ok = r.reacted(userID, postID)
		return nil
	})
	return ok, err
}

// Update changes the kind only; the (user, post) pair of a reaction is fixed
func (r *memoryReactionRepo) Update(ctx context.Context, tx txn.Tx, reaction *reactions.Reaction) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		row, ok := r.s.reactions.get(reaction.ID)
		if !ok {
			return reactions.ErrReactionNotFound
		}
		row.Kind = reaction.Kind
		r.s.reactions.put(log, row.ID, row)

		*reaction = row
		return nil
	})
}

func (r *memoryReactionRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.reactions.remove(log, id) {
			return reactions.ErrReactionNotFound
		}
		return nil
	})
}

func (r *memoryReactionRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	return r.deleteWhere(ctx, tx, func(re reactions.Reaction) bool { return re.UserID == userID })
}

func (r *memoryReactionRepo) DeleteByPostID(ctx context.Context, tx txn.Tx, postID int64) (int64, error) {
	return r.deleteWhere(ctx, tx, func(re reactions.Reaction) bool { return re.PostID == postID })
}

func (r *memoryReactionRepo) DeleteByPostOwnerID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	owned := r.s.ownedBy(userID)
	return r.deleteWhere(ctx, tx, func(re reactions.Reaction) bool { return owned(re.PostID) })
}

func (r *memoryReactionRepo) deleteWhere(ctx context.Context, tx txn.Tx, pred func(reactions.Reaction) bool) (int64, error) {
	var n int64
	err := r.s.write(ctx, tx, func(log *undoLog) error {
		n = r.s.reactions.removeWhere(log, pred)
		return nil
	})
	return n, err
}

func reactionRowID(re reactions.Reaction) int64 { return re.ID }
