package memory

import (
	"context"
	"fmt"
	"strings"

	"Tether/internal/core/comments"
	"Tether/internal/core/interactions"
	"Tether/internal/core/messages"
	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

type memoryUserRepo struct {
	s *Store
}

// NewUserRepository creates a user repository backed by s
func NewUserRepository(s *Store) users.Repository {
	return &memoryUserRepo{s: s}
}

func (r *memoryUserRepo) emailTaken(email string, exceptID int64) bool {
	return r.s.users.exists(func(u users.User) bool {
		return u.ID != exceptID && strings.EqualFold(u.Email, email)
	})
}

func (r *memoryUserRepo) Create(ctx context.Context, tx txn.Tx, user *users.User) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if r.emailTaken(user.Email, 0) {
			return users.ErrEmailTaken
		}
		id, err := r.s.users.nextID(user.ID)
		if err != nil {
			return err
		}

		now := r.s.timestamp()
		row := *user
		row.ID = id
		row.CreatedAt = now
		row.UpdatedAt = now
		r.s.users.put(log, id, row)

		*user = row
		return nil
	})
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	var out *users.User
	err := r.s.read(ctx, func() error {
		row, ok := r.s.users.get(id)
		if !ok {
			return users.ErrUserNotFound
		}
		out = &row
		return nil
	})
	return out, err
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var out *users.User
	err := r.s.read(ctx, func() error {
		found := r.s.users.find(func(u users.User) bool {
			return strings.EqualFold(u.Email, email)
		}, userRowID)
		if len(found) == 0 {
			return users.ErrUserNotFound
		}
		out = found[0]
		return nil
	})
	return out, err
}

func (r *memoryUserRepo) GetAll(ctx context.Context) ([]*users.User, error) {
	var out []*users.User
	err := r.s.read(ctx, func() error {
		out = r.s.users.find(nil, userRowID)
		return nil
	})
	return out, err
}

func (r *memoryUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.s.read(ctx, func() error {
		ok = r.s.users.has(id)
		return nil
	})
	return ok, err
}

func (r *memoryUserRepo) Update(ctx context.Context, tx txn.Tx, user *users.User) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		row, ok := r.s.users.get(user.ID)
		if !ok {
			return users.ErrUserNotFound
		}
		if r.emailTaken(user.Email, user.ID) {
			return users.ErrEmailTaken
		}

		row.Name = user.Name
		row.LastName = user.LastName
		row.DateOfBirth = user.DateOfBirth
		row.Info = user.Info
		row.Email = user.Email
		row.PasswordHash = user.PasswordHash
		row.Role = user.Role
		row.UpdatedAt = r.s.timestamp()
		r.s.users.put(log, row.ID, row)

		*user = row
		return nil
	})
}

// Delete removes the user row only; it fails while anything still references the user
func (r *memoryUserRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.users.has(id) {
			return users.ErrUserNotFound
		}
		if err := r.s.userReferenced(id); err != nil {
			return err
		}
		r.s.users.remove(log, id)
		return nil
	})
}

// userReferenced reports the first table that still points at user id
func (s *Store) userReferenced(id int64) error {
	switch {
	case s.posts.exists(func(p posts.Post) bool { return p.UserID == id }):
		return fmt.Errorf("%w: user %d has posts", ErrReferenced, id)
	case s.comments.exists(func(c comments.Comment) bool { return c.UserID == id }):
		return fmt.Errorf("%w: user %d has comments", ErrReferenced, id)
	case s.reactions.exists(func(r reactions.Reaction) bool { return r.UserID == id }):
		return fmt.Errorf("%w: user %d has reactions", ErrReferenced, id)
	case s.interactions.exists(func(i interactions.Interaction) bool { return i.User1ID == id || i.User2ID == id }):
		return fmt.Errorf("%w: user %d has interactions", ErrReferenced, id)
	case s.messages.exists(func(m messages.Message) bool { return m.SenderID == id || m.ReceiverID == id }):
		return fmt.Errorf("%w: user %d has messages", ErrReferenced, id)
	}
	return nil
}

func userRowID(u users.User) int64 { return u.ID }
