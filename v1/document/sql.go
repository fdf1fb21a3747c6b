package document

import (
	"context"
	"database/sql"

	"github.com/Aleph-Alpha/pgdoc/v1/query"
)

// SQLConn is satisfied by *sql.DB, *sql.Conn, *sql.Tx and gorm.ConnPool.
type SQLConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SQLQuerier adapts a database/sql handle (lib/pq, pgx stdlib or gorm's
// connection pool). Named placeholders are rewritten to $n before execution.
func SQLQuerier(conn SQLConn) Querier {
	return sqlQuerier{conn: conn}
}

type sqlQuerier struct {
	conn SQLConn
}

// positional rewrites @name placeholders into $n with pgx's named-argument
// lexer, which leaves the @> and @? operators and quoted literals untouched.
func positional(ctx context.Context, text string, params query.Parameters) (string, []any, error) {
	if len(params) == 0 {
		return text, nil, nil
	}
	return params.NamedArgs().RewriteQuery(ctx, nil, text, nil)
}

func (q sqlQuerier) Exec(ctx context.Context, text string, params query.Parameters) (int64, error) {
	text, args, err := positional(ctx, text, params)
	if err != nil {
		return 0, err
	}
	res, err := q.conn.ExecContext(ctx, text, args...)
	if err != nil {
		return 0, err
	}
	// Not every driver reports a count for DDL.
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (q sqlQuerier) Query(ctx context.Context, text string, params query.Parameters) (Rows, error) {
	text, args, err := positional(ctx, text, params)
	if err != nil {
		return nil, err
	}
	rows, err := q.conn.QueryContext(ctx, text, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
