package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql methods the store implementations
// need. Both *sql.DB and *sql.Tx satisfy it, so the same store code runs
// against the pool directly or inside a transaction handed out by WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
