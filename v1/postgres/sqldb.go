package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	_ "github.com/lib/pq"
)

// SQLSource is a document.ConnectionSource over database/sql with the
// lib/pq driver.
type SQLSource struct {
	db *sql.DB
}

// OpenSQL opens a lib/pq handle for cfg and verifies it with a ping.
func OpenSQL(ctx context.Context, cfg Config) (*SQLSource, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.ConnectionDetails.maxOpen())
	db.SetMaxIdleConns(cfg.ConnectionDetails.maxIdle())
	db.SetConnMaxLifetime(cfg.ConnectionDetails.maxLifetime())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &SQLSource{db: db}, nil
}

// WrapDB adapts a handle the caller opened. Close closes it.
func WrapDB(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

// DB returns the underlying handle.
func (s *SQLSource) DB() *sql.DB {
	return s.db
}

func (s *SQLSource) Querier() document.Querier {
	return document.SQLQuerier(s.db)
}

// Transaction runs fn in a database/sql transaction. The transaction is
// rolled back when fn returns an error or panics.
func (s *SQLSource) Transaction(ctx context.Context, fn func(q document.Querier) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(document.SQLQuerier(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the handle.
func (s *SQLSource) Close() error {
	return s.db.Close()
}
