package db

import (
	"context"
	"database/sql"
)

// DB wraps the shared *sql.DB handle so packages depend on an
// internal type rather than database/sql directly.
type DB struct {
	*sql.DB
}

// Querier is the subset of database/sql the stores issue statements
// through. Both *sql.DB and *sql.Tx satisfy it, so the same store
// code serves direct calls and transactional sessions.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
