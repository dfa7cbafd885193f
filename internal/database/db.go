// Package database defines the narrow store contract the repositories and
// seeders program against. Production wires the pgx pool from the postgres
// subpackage, tests substitute in-memory fakes.
//
// The contract is single-statement on purpose. The one transactional
// consumer, the migration runner, works on the database/sql handle from
// SQLDB directly.
package database

import (
	"context"
	"database/sql"
)

type DB interface {
	Ping(ctx context.Context) error
	Close() error

	// Exec returns the number of rows the statement affected.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	// SQLDB exposes the database/sql view of the same pool.
	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
