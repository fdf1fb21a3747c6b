package postgres

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is a document.ConnectionSource backed by a pgx connection pool.
// Statements go through pgx's named-argument rewriting.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool opens a pgx pool for cfg and verifies it with a ping.
func NewPool(ctx context.Context, cfg Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres connection string: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.ConnectionDetails.maxOpen())
	poolCfg.MaxConnLifetime = cfg.ConnectionDetails.maxLifetime()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &Pool{pool: pool}, nil
}

// WrapPool adapts a pool the caller created. Close closes it.
func WrapPool(pool *pgxpool.Pool) *Pool {
	return &Pool{pool: pool}
}

// Pgx returns the underlying pool.
func (p *Pool) Pgx() *pgxpool.Pool {
	return p.pool
}

func (p *Pool) Querier() document.Querier {
	return document.PgxQuerier(p.pool)
}

// Transaction runs fn in a pgx transaction, committing when fn returns nil.
func (p *Pool) Transaction(ctx context.Context, fn func(q document.Querier) error) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		return fn(document.PgxQuerier(tx))
	})
}

// Ping checks that a connection can be acquired and used.
func (p *Pool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the pool. It is safe to call more than once.
func (p *Pool) Close() error {
	p.pool.Close()
	return nil
}
