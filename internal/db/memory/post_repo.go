package memory

import (
	"context"
	"fmt"
	"slices"

	"Tether/internal/core/comments"
	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
	"Tether/internal/core/txn"
)

type memoryPostRepo struct {
	s *Store
}

// NewPostRepository creates a post repository backed by s
func NewPostRepository(s *Store) posts.Repository {
	return &memoryPostRepo{s: s}
}

func (r *memoryPostRepo) Create(ctx context.Context, tx txn.Tx, post *posts.Post) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.users.has(post.UserID) {
			return posts.ErrAuthorNotFound
		}
		id, err := r.s.posts.nextID(post.ID)
		if err != nil {
			return err
		}

		row := *post
		row.ID = id
		row.CreatedAt = r.s.timestamp()
		r.s.posts.put(log, id, row)

		*post = row
		return nil
	})
}

func (r *memoryPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	var out *posts.Post
	err := r.s.read(ctx, func() error {
		row, ok := r.s.posts.get(id)
		if !ok {
			return posts.ErrNotFound
		}
		out = &row
		return nil
	})
	return out, err
}

// GetAll returns every post, newest first
func (r *memoryPostRepo) GetAll(ctx context.Context) ([]*posts.Post, error) {
	var out []*posts.Post
	err := r.s.read(ctx, func() error {
		out = r.s.posts.find(nil, postRowID)
		return nil
	})
	slices.Reverse(out)
	return out, err
}

// ListByUser returns the posts of userID, newest first
func (r *memoryPostRepo) ListByUser(ctx context.Context, userID int64) ([]*posts.Post, error) {
	var out []*posts.Post
	err := r.s.read(ctx, func() error {
		out = r.s.posts.find(func(p posts.Post) bool { return p.UserID == userID }, postRowID)
		return nil
	})
	slices.Reverse(out)
	return out, err
}

func (r *memoryPostRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.s.read(ctx, func() error {
		ok = r.s.posts.has(id)
		return nil
	})
	return ok, err
}

func (r *memoryPostRepo) Update(ctx context.Context, tx txn.Tx, post *posts.Post) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		row, ok := r.s.posts.get(post.ID)
		if !ok {
			return posts.ErrNotFound
		}
		row.Text = post.Text
		r.s.posts.put(log, row.ID, row)

		*post = row
		return nil
	})
}

func (r *memoryPostRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.posts.has(id) {
			return posts.ErrNotFound
		}
		if err := r.s.postReferenced(func(postID int64) bool { return postID == id }); err != nil {
			return err
		}
		r.s.posts.remove(log, id)
		return nil
	})
}

func (r *memoryPostRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	var n int64
	err := r.s.write(ctx, tx, func(log *undoLog) error {
		if err := r.s.postReferenced(r.s.ownedBy(userID)); err != nil {
			return err
		}
		n = r.s.posts.removeWhere(log, func(p posts.Post) bool { return p.UserID == userID })
		return nil
	})
	return n, err
}

// ownedBy matches post ids whose author is userID
func (s *Store) ownedBy(userID int64) func(postID int64) bool {
	return func(postID int64) bool {
		p, ok := s.posts.get(postID)
		return ok && p.UserID == userID
	}
}

// postReferenced reports whether a comment or reaction points at a post matched by match
func (s *Store) postReferenced(match func(postID int64) bool) error {
	if s.comments.exists(func(c comments.Comment) bool { return match(c.PostID) }) {
		return fmt.Errorf("%w: post has comments", ErrReferenced)
	}
	if s.reactions.exists(func(r reactions.Reaction) bool { return match(r.PostID) }) {
		return fmt.Errorf("%w: post has reactions", ErrReferenced)
	}
	return nil
}

func postRowID(p posts.Post) int64 { return p.ID }
