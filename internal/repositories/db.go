package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DB is the slice of pgx that repositories need. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so the same repository code runs inside and
// outside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TxDB additionally starts transactions; the report cascade delete
// needs one so a partial cascade can never leave orphaned rows.
type TxDB interface {
	DB
	Begin(ctx context.Context) (pgx.Tx, error)
}
