package memory

import (
	"context"

	"Tether/internal/core/comments"
	"Tether/internal/core/posts"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

type memoryCommentRepo struct {
	s *Store
}

// NewCommentRepository creates a comment repository backed by s
func NewCommentRepository(s *Store) comments.Repository {
	return &memoryCommentRepo{s: s}
}

func (r *memoryCommentRepo) Create(ctx context.Context, tx txn.Tx, comment *comments.Comment) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.users.has(comment.UserID) {
			return users.ErrUserNotFound
		}
		if !r.s.posts.has(comment.PostID) {
			return posts.ErrNotFound
		}
		id, err := r.s.comments.nextID(comment.ID)
		if err != nil {
			return err
		}

		row := *comment
		row.ID = id
		row.CreatedAt = r.s.timestamp()
		r.s.comments.put(log, id, row)

		*comment = row
		return nil
	})
}

func (r *memoryCommentRepo) GetByID(ctx context.Context, id int64) (*comments.Comment, error) {
	var out *comments.Comment
	err := r.s.read(ctx, func() error {
		row, ok := r.s.comments.get(id)
		if !ok {
			return comments.ErrCommentNotFound
		}
		out = &row
		return nil
	})
	return out, err
}

func (r *memoryCommentRepo) GetAll(ctx context.Context) ([]*comments.Comment, error) {
	var out []*comments.Comment
	err := r.s.read(ctx, func() error {
		out = r.s.comments.find(nil, commentRowID)
		return nil
	})
	return out, err
}

// ListByPost returns the comments on postID, oldest first
func (r *memoryCommentRepo) ListByPost(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	var out []*comments.Comment
	err := r.s.read(ctx, func() error {
		out = r.s.comments.find(func(c comments.Comment) bool { return c.PostID == postID }, commentRowID)
		return nil
	})
	return out, err
}

func (r *memoryCommentRepo) Update(ctx context.Context, tx txn.Tx, comment *comments.Comment) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		row, ok := r.s.comments.get(comment.ID)
		if !ok {
			return comments.ErrCommentNotFound
		}
		row.Text = comment.Text
		r.s.comments.put(log, row.ID, row)

		*comment = row
		return nil
	})
}

func (r *memoryCommentRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.comments.remove(log, id) {
			return comments.ErrCommentNotFound
		}
		return nil
	})
}

func (r *memoryCommentRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	return r.deleteWhere(ctx, tx, func(c comments.Comment) bool { return c.UserID == userID })
}

func (r *memoryCommentRepo) DeleteByPostID(ctx context.Context, tx txn.Tx, postID int64) (int64, error) {
	return r.deleteWhere(ctx, tx, func(c comments.Comment) bool { return c.PostID == postID })
}

func (r *memoryCommentRepo) DeleteByPostOwnerID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	owned := r.s.ownedBy(userID)
	return r.deleteWhere(ctx, tx, func(c comments.Comment) bool { return owned(c.PostID) })
}

func (r *memoryCommentRepo) deleteWhere(ctx context.Context, tx txn.Tx, pred func(comments.Comment) bool) (int64, error) {
	var n int64
	err := r.s.write(ctx, tx, func(log *undoLog) error {
		n = r.s.comments.removeWhere(log, pred)
		return nil
	})
	return n, err
}

func commentRowID(c comments.Comment) int64 { return c.ID }
