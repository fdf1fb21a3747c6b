package document

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/query"
)

// Row is the current result row.
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates over a result set.
type Rows interface {
	Row
	Next() bool
	Close() error
	Err() error
}

// Querier executes built statements with their parameter set. It is the
// boundary between the document operations and a concrete driver; see
// PgxQuerier and SQLQuerier.
//
//go:generate mockgen -source=interface.go -destination=mock_document.go -package=document -exclude_interfaces=Row,Rows,Runner
type Querier interface {
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, sql string, params query.Parameters) (int64, error)
	// Query runs a statement returning rows. The caller closes the rows.
	Query(ctx context.Context, sql string, params query.Parameters) (Rows, error)
}

// ConnectionSource hands out the Querier used by default-connection calls.
// A source usually owns a connection pool; Close releases it.
type ConnectionSource interface {
	Querier() Querier
	Close() error
}

// Transactor is implemented by sources able to run a function inside a
// database transaction. The transaction commits when fn returns nil.
type Transactor interface {
	Transaction(ctx context.Context, fn func(q Querier) error) error
}

// Runner resolves the connection and configuration an operation runs with.
// *Store resolves the configured source on every call; *Session uses the
// connection it was created with.
type Runner interface {
	session() (*Session, error)
}
