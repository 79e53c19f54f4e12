// Package database hides the difference between the Postgres and SQLite backends
// behind one executor interface and carries transactions through context.
package database

import (
	"context"
	"database/sql"
)

// Row is a single result row. pgx.Row and *sql.Row both satisfy it.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result cursor.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Result reports what an Exec changed.
type Result interface {
	RowsAffected() (int64, error)
}

// Executor runs statements. Repositories only ever talk to an Executor, which is either
// the pooled connection or the transaction found in the context.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Transaction is an Executor that can be finished.
type Transaction interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Connection is a process-wide store handle. It is opened once at startup and closed at shutdown.
type Connection interface {
	Executor
	BeginTx(ctx context.Context) (Transaction, error)
	Ping(ctx context.Context) error
	Close() error
	Driver() Driver
}

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool             { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *sqlRows) Close() error           { return r.rows.Close() }
func (r *sqlRows) Err() error             { return r.rows.Err() }

// WrapSQLRows adapts *sql.Rows.
func WrapSQLRows(rows *sql.Rows) Rows {
	return &sqlRows{rows: rows}
}

// WrapSQLResult adapts sql.Result.
func WrapSQLResult(result sql.Result) Result {
	return result
}

// RequireAffected returns missing when an Exec changed no rows.
func RequireAffected(result Result, missing error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}
