package db

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories are built on. Handing a repository
// the pool gives autocommit statements; handing it the tx from WithinTx makes
// its writes part of that transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
