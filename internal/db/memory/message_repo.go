package memory

import (
	"context"

	"Tether/internal/core/messages"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

type memoryMessageRepo struct {
	s *Store
}

// NewMessageRepository creates a message repository backed by s
func NewMessageRepository(s *Store) messages.Repository {
	return &memoryMessageRepo{s: s}
}

func (r *memoryMessageRepo) Create(ctx context.Context, tx txn.Tx, message *messages.Message) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.users.has(message.SenderID) || !r.s.users.has(message.ReceiverID) {
			return users.ErrUserNotFound
		}
		id, err := r.s.messages.nextID(message.ID)
		if err != nil {
			return err
		}

		row := *message
		row.ID = id
		row.CreatedAt = r.s.timestamp()
		r.s.messages.put(log, id, row)

		*message = row
		return nil
	})
}

func (r *memoryMessageRepo) GetByID(ctx context.Context, id int64) (*messages.Message, error) {
	var out *messages.Message
	err := r.s.read(ctx, func() error {
		row, ok := r.s.messages.get(id)
		if !ok {
			return messages.ErrMessageNotFound
		}
		out = &row
		return nil
	})
	return out, err
}

func (r *memoryMessageRepo) GetAll(ctx context.Context) ([]*messages.Message, error) {
	var out []*messages.Message
	err := r.s.read(ctx, func() error {
		out = r.s.messages.find(nil, messageRowID)
		return nil
	})
	return out, err
}

func (r *memoryMessageRepo) ListConversation(ctx context.Context, a, b int64) ([]*messages.Message, error) {
	var out []*messages.Message
	err := r.s.read(ctx, func() error {
		out = r.s.messages.find(func(m messages.Message) bool {
			return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
		}, messageRowID)
		return nil
	})
	return out, err
}

func (r *memoryMessageRepo) Update(ctx context.Context, tx txn.Tx, message *messages.Message) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		row, ok := r.s.messages.get(message.ID)
		if !ok {
			return messages.ErrMessageNotFound
		}
		row.Text = message.Text
		r.s.messages.put(log, row.ID, row)

		*message = row
		return nil
	})
}

func (r *memoryMessageRepo) Delete(ctx context.Context, tx txn.Tx, id int64) error {
	return r.s.write(ctx, tx, func(log *undoLog) error {
		if !r.s.messages.remove(log, id) {
			return messages.ErrMessageNotFound
		}
		return nil
	})
}

func (r *memoryMessageRepo) DeleteByUserID(ctx context.Context, tx txn.Tx, userID int64) (int64, error) {
	var n int64
	err := r.s.write(ctx, tx, func(log *undoLog) error {
		n = r.s.messages.removeWhere(log, func(m messages.Message) bool { return m.Involves(userID) })
		return nil
	})
	return n, err
}

func messageRowID(m messages.Message) int64 { return m.ID }
