package document

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/query"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxConn is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type PgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgxQuerier adapts a pgx pool, connection or transaction. Parameters are
// passed as pgx.NamedArgs, so @name placeholders are rewritten by pgx itself.
func PgxQuerier(conn PgxConn) Querier {
	return pgxQuerier{conn: conn}
}

type pgxQuerier struct {
	conn PgxConn
}

func (q pgxQuerier) args(params query.Parameters) []any {
	if len(params) == 0 {
		return nil
	}
	return []any{params.NamedArgs()}
}

func (q pgxQuerier) Exec(ctx context.Context, sql string, params query.Parameters) (int64, error) {
	tag, err := q.conn.Exec(ctx, sql, q.args(params)...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q pgxQuerier) Query(ctx context.Context, sql string, params query.Parameters) (Rows, error) {
	rows, err := q.conn.Query(ctx, sql, q.args(params)...)
	if err != nil {
		return nil, err
	}
	return pgxRows{Rows: rows}, nil
}

type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Close() error {
	r.Rows.Close()
	return r.Rows.Err()
}
