package txn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	commits   int
	rollbacks int
	done      bool
	commitErr error
}

func (t *fakeTx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	if t.commitErr != nil {
		return t.commitErr
	}
	t.commits++
	t.done = true
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.done {
		return ErrTxDone
	}
	t.rollbacks++
	t.done = true
	return nil
}

type fakeManager struct {
	tx       *fakeTx
	begins   int
	beginErr error
}

func (m *fakeManager) Begin(ctx context.Context) (Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	m.begins++
	m.tx = &fakeTx{}
	return m.tx, nil
}

func TestRun_CommitsOnSuccess(t *testing.T) {
	m := &fakeManager{}

	err := Run(context.Background(), m, nil, func(ctx context.Context, tx Tx) error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, m.tx.commits)
	assert.Equal(t, 0, m.tx.rollbacks)
}

func TestRun_RollsBackAndPropagatesError(t *testing.T) {
	m := &fakeManager{}
	boom := errors.New("boom")

	err := Run(context.Background(), m, nil, func(ctx context.Context, tx Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.tx.commits)
	assert.Equal(t, 1, m.tx.rollbacks)
}

func TestRun_RollsBackOnPanic(t *testing.T) {
	m := &fakeManager{}

	assert.Panics(t, func() {
		_ = Run(context.Background(), m, nil, func(ctx context.Context, tx Tx) error {
			panic("unexpected")
		})
	})
	assert.Equal(t, 1, m.tx.rollbacks)
}

func TestRun_CancelledBeforeBegin(t *testing.T) {
	m := &fakeManager{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Run(ctx, m, nil, func(ctx context.Context, tx Tx) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.Equal(t, 0, m.begins)
}

func TestRun_DetachesFromCancellationAfterBegin(t *testing.T) {
	m := &fakeManager{}
	ctx, cancel := context.WithCancel(context.Background())

	err := Run(ctx, m, nil, func(ctx context.Context, tx Tx) error {
		cancel()
		return ctx.Err()
	})

	require.NoError(t, err)
	assert.Equal(t, 1, m.tx.commits)
}

func TestRun_BeginFailure(t *testing.T) {
	m := &fakeManager{beginErr: errors.New("connection refused")}

	err := Run(context.Background(), m, nil, func(ctx context.Context, tx Tx) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
}

func TestRun_CommitFailure(t *testing.T) {
	m := &fakeManager{}
	commitErr := errors.New("serialization failure")

	err := Run(context.Background(), m, nil, func(ctx context.Context, tx Tx) error {
		tx.(*fakeTx).commitErr = commitErr
		return nil
	})

	assert.ErrorIs(t, err, commitErr)
	assert.Equal(t, 1, m.tx.rollbacks)
}
