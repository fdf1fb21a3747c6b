// Package migrate converts document tables from the key-column layout (a
// separate id primary-key column) to the embedded-key layout (identity inside
// the document, enforced by a unique expression index).
package migrate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/Aleph-Alpha/pgdoc/v1/query"
)

// Result reports what KeyColumnToEmbedded did for one table.
type Result struct {
	Table string
	// Backfilled is the number of documents that lacked the identity field
	// and received it from the key column.
	Backfilled int64
	// AlreadyMigrated is true when the table had no id column left; only the
	// key index was ensured.
	AlreadyMigrated bool
}

// KeyColumnToEmbedded migrates table in three steps: copy the id column into
// documents missing idField, create the unique index on idField, then drop
// the id column. Running it again on a migrated table only re-ensures the
// index.
//
// When r is a *document.Store whose source supports transactions, all steps
// run in one transaction.
func KeyColumnToEmbedded(ctx context.Context, r document.Runner, table, idField string) (Result, error) {
	if idField == "" {
		idField = query.DefaultIDField
	}

	store, ok := r.(*document.Store)
	if !ok {
		return keyColumnToEmbedded(ctx, r, table, idField)
	}

	var result Result
	err := store.Transaction(ctx, func(tx *document.Session) error {
		var err error
		result, err = keyColumnToEmbedded(ctx, tx, table, idField)
		return err
	})
	if errors.Is(err, document.ErrTransactionsUnsupported) {
		return keyColumnToEmbedded(ctx, r, table, idField)
	}
	return result, err
}

func keyColumnToEmbedded(ctx context.Context, r document.Runner, table, idField string) (Result, error) {
	result := Result{Table: table}

	schema, name := splitTable(table)
	hasKey, err := document.CustomScalar(ctx, r, HasKeyColumn(), query.Parameters{
		query.Param("schema", schema),
		query.Param("table", name),
	}, document.Scalar[bool])
	if err != nil {
		return result, fmt.Errorf("failed to inspect %s: %w", table, err)
	}

	if hasKey {
		result.Backfilled, err = document.CustomNonQuery(ctx, r, Backfill(table, idField), nil)
		if err != nil {
			return result, fmt.Errorf("failed to backfill %s: %w", table, err)
		}
	} else {
		result.AlreadyMigrated = true
	}

	builder := query.NewBuilder(query.EmbeddedKey, idField)
	if _, err := document.CustomNonQuery(ctx, r, builder.CreateKeyIndex(table), nil); err != nil {
		return result, fmt.Errorf("failed to create key index on %s: %w", table, err)
	}

	if hasKey {
		if _, err := document.CustomNonQuery(ctx, r, DropKeyColumn(table), nil); err != nil {
			return result, fmt.Errorf("failed to drop key column of %s: %w", table, err)
		}
	}
	return result, nil
}

// splitTable separates an optional schema qualifier; an unqualified table is
// looked up in the current schema.
func splitTable(table string) (schema, name string) {
	if i := strings.LastIndex(table, "."); i >= 0 {
		return table[:i], table[i+1:]
	}
	return "", table
}

// HasKeyColumn checks information_schema for an id column on @table in
// @schema, or in the current schema when @schema is empty.
func HasKeyColumn() string {
	return "SELECT EXISTS (SELECT 1 FROM information_schema.columns " +
		"WHERE table_schema = COALESCE(NULLIF(@schema::text, ''), current_schema()) " +
		"AND table_name = @table::text AND column_name = 'id') AS it"
}

// Backfill copies the id column into documents that lack idField.
func Backfill(table, idField string) string {
	return fmt.Sprintf("UPDATE %s SET data = jsonb_set(data, '{%s}', to_jsonb(id)) WHERE NOT (data ? '%s')",
		table, idField, idField)
}

// DropKeyColumn removes the id column.
func DropKeyColumn(table string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN IF EXISTS id", table)
}
