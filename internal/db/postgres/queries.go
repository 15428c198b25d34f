package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"Tether/internal/core/txn"
)

// PostgreSQL error codes the repositories translate into domain errors
const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeCheckViolation      pq.ErrorCode = "23514"
)

// pqErr extracts the driver error, if any
func pqErr(err error) (*pq.Error, bool) {
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pe, ok := pqErr(err)
	return ok && pe.Code == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	pe, ok := pqErr(err)
	return ok && pe.Code == codeForeignKeyViolation
}

func isCheckViolation(err error) bool {
	pe, ok := pqErr(err)
	return ok && pe.Code == codeCheckViolation
}

// execDelete runs a single-row delete and returns notFound when nothing matched
func execDelete(ctx context.Context, q querier, query string, id int64, notFound error) error {
	result, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

// execBulkDelete runs a bulk delete and returns the number of rows removed
func execBulkDelete(ctx context.Context, db *sql.DB, tx txn.Tx, query string, args ...any) (int64, error) {
	q, err := conn(db, tx)
	if err != nil {
		return 0, err
	}
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// exists runs a SELECT EXISTS query
func exists(ctx context.Context, db *sql.DB, query string, args ...any) (bool, error) {
	var ok bool
	if err := db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan; an empty result is a non-nil empty slice
func collect[T any](rows *sql.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer func() { _ = rows.Close() }()

	result := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}
