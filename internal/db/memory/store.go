// Package memory is an in-process implementation of every repository,
// used by tests and by the server when STORAGE_DRIVER=memory.
//
// All tables live in one Store guarded by a single RWMutex. A transaction
// holds the write lock from Begin until Commit or Rollback and records an
// undo entry for every change; Rollback replays them in reverse. Writes made
// without a transaction lock for the duration of the call.
//
// Reads take the read lock and do not join a transaction, so they must not
// be called by the goroutine that holds an open transaction.
//
// The store enforces the same constraints as the SQL schema: references on
// insert, ON DELETE RESTRICT, and the uniqueness of emails, reactions per
// (user, post) and interactions per unordered pair.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"Tether/internal/core/apperr"
	"Tether/internal/core/comments"
	"Tether/internal/core/interactions"
	"Tether/internal/core/messages"
	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
	"Tether/internal/core/txn"
	"Tether/internal/core/users"
)

var (
	// ErrReferenced is returned when deleting a row that other rows still reference
	ErrReferenced = errors.New("row is still referenced")

	// ErrDuplicateID is returned when Create is given an ID that is already in use
	ErrDuplicateID = fmt.Errorf("duplicate identifier: %w", apperr.ErrConflict)

	// ErrForeignTx is returned when a transaction from another store is passed in
	ErrForeignTx = errors.New("transaction does not belong to this store")
)

// Store holds every table of the in-memory backend
type Store struct {
	now          func() time.Time
	users        *table[users.User]
	posts        *table[posts.Post]
	comments     *table[comments.Comment]
	reactions    *table[reactions.Reaction]
	interactions *table[interactions.Interaction]
	messages     *table[messages.Message]
	mu           sync.RWMutex
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		now:          time.Now,
		users:        newTable[users.User](),
		posts:        newTable[posts.Post](),
		comments:     newTable[comments.Comment](),
		reactions:    newTable[reactions.Reaction](),
		interactions: newTable[interactions.Interaction](),
		messages:     newTable[messages.Message](),
	}
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// Tx is a transaction on a Store. It owns the store's write lock until it ends.
type Tx struct {
	store *Store
	undo  undoLog
	done  bool
}

// Begin opens a transaction, blocking until no other transaction or write is in progress
func (s *Store) Begin(ctx context.Context) (txn.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &Tx{store: s}, nil
}

// Commit keeps every change made in the transaction
func (t *Tx) Commit() error {
	if t.done {
		return txn.ErrTxDone
	}
	t.done = true
	t.undo = nil
	t.store.mu.Unlock()
	return nil
}

// Rollback reverts every change made in the transaction
func (t *Tx) Rollback() error {
	if t.done {
		return txn.ErrTxDone
	}
	t.done = true
	t.undo.replay()
	t.undo = nil
	t.store.mu.Unlock()
	return nil
}

// undoLog records how to revert each change, in the order they were made
type undoLog []func()

func (l *undoLog) add(fn func()) {
	*l = append(*l, fn)
}

func (l undoLog) replay() {
	for i := len(l) - 1; i >= 0; i-- {
		l[i]()
	}
}

// write runs fn with the write lock held, either by tx or for this call only.
// A failing call without a transaction is reverted before returning.
func (s *Store) write(ctx context.Context, tx txn.Tx, fn func(log *undoLog) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if tx == nil {
		s.mu.Lock()
		defer s.mu.Unlock()

		var log undoLog
		if err := fn(&log); err != nil {
			log.replay()
			return err
		}
		return nil
	}

	t, ok := tx.(*Tx)
	if !ok || t.store != s {
		return ErrForeignTx
	}
	if t.done {
		return txn.ErrTxDone
	}
	return fn(&t.undo)
}

// read runs fn with the read lock held
func (s *Store) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// table is an id-keyed set of rows with its own id sequence.
// Rows are stored by value so callers never alias stored state.
type table[T any] struct {
	rows map[int64]T
	seq  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

// nextID returns id if it is free, or the next sequence value when id is zero
func (t *table[T]) nextID(id int64) (int64, error) {
	if id == 0 {
		t.seq++
		return t.seq, nil
	}
	if _, taken := t.rows[id]; taken {
		return 0, ErrDuplicateID
	}
	if id > t.seq {
		t.seq = id
	}
	return id, nil
}

func (t *table[T]) get(id int64) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) has(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

// put inserts or replaces a row and records how to undo it
func (t *table[T]) put(log *undoLog, id int64, row T) {
	prev, existed := t.rows[id]
	t.rows[id] = row
	log.add(func() {
		if existed {
			t.rows[id] = prev
		} else {
			delete(t.rows, id)
		}
	})
}

// remove deletes a row and records how to undo it
func (t *table[T]) remove(log *undoLog, id int64) bool {
	prev, ok := t.rows[id]
	if !ok {
		return false
	}
	delete(t.rows, id)
	log.add(func() { t.rows[id] = prev })
	return true
}

// removeWhere deletes every row matching pred and returns how many were removed
func (t *table[T]) removeWhere(log *undoLog, pred func(T) bool) int64 {
	var n int64
	for id, row := range t.rows {
		if pred(row) {
			t.remove(log, id)
			n++
		}
	}
	return n
}

func (t *table[T]) exists(pred func(T) bool) bool {
	for _, row := range t.rows {
		if pred(row) {
			return true
		}
	}
	return false
}

// find returns copies of the rows matching pred, ordered by id
func (t *table[T]) find(pred func(T) bool, id func(T) int64) []*T {
	out := make([]*T, 0)
	for _, row := range t.rows {
		row := row
		if pred == nil || pred(row) {
			out = append(out, &row)
		}
	}
	slices.SortFunc(out, func(a, b *T) int {
		return cmp.Compare(id(*a), id(*b))
	})
	return out
}
