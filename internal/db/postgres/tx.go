package postgres

import (
	"context"
	"database/sql"
	"errors"

	"Tether/internal/core/txn"
)

// ErrForeignTx is returned when a repository is handed a transaction it did not open
var ErrForeignTx = errors.New("transaction was not opened by the postgres TxManager")

// TxManager opens database transactions for the cascade orchestrators
type TxManager struct {
	db *sql.DB
}

// NewTxManager creates a transaction manager over db
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// Begin starts a read-committed transaction
func (m *TxManager) Begin(ctx context.Context) (txn.Tx, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &pgTx{tx: tx}, nil
}

// pgTx adapts *sql.Tx to txn.Tx
type pgTx struct {
	tx *sql.Tx
}

func (t *pgTx) Commit() error {
	return mapTxErr(t.tx.Commit())
}

func (t *pgTx) Rollback() error {
	return mapTxErr(t.tx.Rollback())
}

func mapTxErr(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return txn.ErrTxDone
	}
	return err
}

// querier is the subset of *sql.DB and *sql.Tx the repositories use
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction behind tx, or db when tx is nil
func conn(db *sql.DB, tx txn.Tx) (querier, error) {
	if tx == nil {
		return db, nil
	}
	t, ok := tx.(*pgTx)
	if !ok {
		return nil, ErrForeignTx
	}
	return t.tx, nil
}
