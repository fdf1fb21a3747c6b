package query

import (
	"fmt"
	"strings"
)

// unqualified strips a schema qualifier: "schema.table" -> "table".
func unqualified(table string) string {
	pieces := strings.Split(table, ".")
	return pieces[len(pieces)-1]
}

// IndexName returns the name of the GIN index for table.
func IndexName(table string) string {
	return "idx_" + unqualified(table)
}

// KeyIndexName returns the name of the unique identity index for table.
func KeyIndexName(table string) string {
	return "idx_" + unqualified(table) + "_key"
}

// CreateIndex returns the statement creating the GIN index over the data column.
func CreateIndex(table string, variant IndexVariant) (string, error) {
	suffix, err := variant.opsSuffix()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s USING GIN (data%s)", IndexName(table), table, suffix), nil
}

// CreateTable returns the statement creating a document table for the
// builder's strategy.
func (b Builder) CreateTable(table string) string {
	if b.Strategy == KeyColumn {
		return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id TEXT NOT NULL PRIMARY KEY, data JSONB NOT NULL)", table)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (data JSONB NOT NULL)", table)
}

// CreateKeyIndex returns the statement creating the unique index on the
// document identity. KeyColumn tables get uniqueness from their primary key,
// so the result is empty for them.
func (b Builder) CreateKeyIndex(table string) string {
	if b.Strategy == KeyColumn {
		return ""
	}
	return fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s)", KeyIndexName(table), table, b.keyExpression())
}
