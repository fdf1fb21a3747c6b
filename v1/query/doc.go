// Package query builds the PostgreSQL statements used by the document store.
//
// Everything in this package is pure string construction: nothing here touches
// a connection. Statements reference their inputs through named placeholders
// (@id, @data, @criteria, @path) which are bound at execution time from a
// Parameters set; documents are never interpolated into SQL text.
//
// Table and index names are interpolated verbatim. They are trusted to be valid
// SQL identifiers, optionally schema-qualified ("schema.table").
//
// Two table layouts are supported through Strategy:
//
//   - KeyColumn: `id TEXT NOT NULL PRIMARY KEY, data JSONB NOT NULL`; id
//     predicates compare the id column.
//   - EmbeddedKey: `data JSONB NOT NULL` only; the identity lives inside the
//     document under a configurable field ("Id" by default) and uniqueness
//     comes from a unique index on `(data ->> 'Id')`.
//
// Example:
//
//	b := query.NewBuilder(query.EmbeddedKey, "Id")
//	b.FindByID("app.users")
//	// SELECT data FROM app.users WHERE data ->> 'Id' = @id
//
//	query.CreateIndex("app.users", query.Optimized)
//	// CREATE INDEX IF NOT EXISTS idx_users ON app.users USING GIN (data jsonb_path_ops)
package query
