package document

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/query"
)

// EnsureTable creates the document table if it does not exist. Under the
// embedded-key layout it also ensures the unique index on the identity field.
func EnsureTable(ctx context.Context, r Runner, table string) error {
	s, err := r.session()
	if err != nil {
		return err
	}
	b := s.builder()
	if _, err := s.exec(ctx, "ensure_table", table, b.CreateTable(table), nil); err != nil {
		return err
	}
	return ensureKeyIndex(ctx, s, b, table)
}

// EnsureIndex creates the GIN index of the given variant over the data column.
func EnsureIndex(ctx context.Context, r Runner, table string, variant query.IndexVariant) error {
	sql, err := query.CreateIndex(table, variant)
	if err != nil {
		return err
	}
	s, err := r.session()
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, "ensure_index", table, sql, nil)
	return err
}

// EnsureKeyIndex creates the unique identity index. It is a no-op under the
// key-column layout, where the primary key already enforces uniqueness.
func EnsureKeyIndex(ctx context.Context, r Runner, table string) error {
	s, err := r.session()
	if err != nil {
		return err
	}
	return ensureKeyIndex(ctx, s, s.builder(), table)
}

func ensureKeyIndex(ctx context.Context, s *Session, b query.Builder, table string) error {
	sql := b.CreateKeyIndex(table)
	if sql == "" {
		return nil
	}
	_, err := s.exec(ctx, "ensure_key_index", table, sql, nil)
	return err
}
