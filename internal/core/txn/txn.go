// Package txn defines the transaction boundary used by cascade orchestrators.
//
// A Tx is threaded explicitly through repository calls. Repositories accept a
// nil Tx to mean "run on its own"; a non-nil Tx makes the call part of that
// unit of work. A Tx is owned by the single invocation that began it and is
// never shared between concurrent requests.
package txn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrTxDone is returned by Commit or Rollback on a transaction that has
// already been committed or rolled back
var ErrTxDone = errors.New("transaction has already been committed or rolled back")

// Tx is a live unit of work
type Tx interface {
	Commit() error
	Rollback() error
}

// Manager opens transactions against a backing store
type Manager interface {
	Begin(ctx context.Context) (Tx, error)
}

// Run executes fn inside a transaction opened on m.
//
// Cancellation is honoured only before Begin: once the transaction is open,
// fn receives a context detached from the caller's cancellation so the unit
// of work always reaches Commit or Rollback. The transaction is rolled back
// on every exit path other than a successful commit, including panics.
// Errors returned by fn are propagated unchanged.
func Run(ctx context.Context, m Manager, logger *slog.Logger, fn func(ctx context.Context, tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx = context.WithoutCancel(ctx)

	tx, err := m.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, ErrTxDone) {
			logger.Error("failed to rollback transaction",
				slog.String("error", rollbackErr.Error()),
			)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
