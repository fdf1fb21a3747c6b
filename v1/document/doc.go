// Package document stores and queries JSON documents in PostgreSQL jsonb tables.
//
// Every document lives in a single jsonb column named data. Identity is
// either a property inside the document (the embedded-key layout, the
// default, backed by a unique expression index) or a separate id primary-key
// column (the key-column layout). Statements are produced by the query
// package and bound with named parameters (@id, @data, @criteria, @path).
//
// Core Features:
//   - Table and GIN index creation (full or jsonb_path_ops)
//   - Insert, save (upsert) and full replace by identity
//   - Shallow merge patches by identity, containment or JSON-Path
//   - Find, count, exists and delete by identity, containment or JSON-Path
//   - Custom statements with caller-supplied row mapping
//   - Pluggable serializer, zap logging, otel spans and an operation observer
//
// Configuration lives in a Store. A ConnectionSource registered on the store
// is the default connection; operations given the *Store resolve it on every
// call, while a *Session runs on one explicit connection such as a
// transaction.
//
// Basic Usage:
//
//	import (
//		"github.com/Aleph-Alpha/pgdoc/v1/document"
//		"github.com/Aleph-Alpha/pgdoc/v1/postgres"
//	)
//
//	pool, err := postgres.NewPool(ctx, postgres.Config{
//		Connection: postgres.Connection{ConnectionString: "postgres://localhost/app"},
//	})
//	if err != nil {
//		return err
//	}
//
//	store, _ := document.NewStore(document.Config{})
//	_ = store.UseSource(pool)
//	defer store.Close()
//
//	_ = document.EnsureTable(ctx, store, "customer")
//	_ = document.EnsureIndex(ctx, store, "customer", query.Optimized)
//
//	err = document.Insert(ctx, store, "customer", "c1", Customer{Id: "c1", Name: "Ada"})
//	if document.IsDuplicateKey(err) {
//		// handle conflict
//	}
//
//	c, ok, err := document.FindByID[Customer](ctx, store, "customer", "c1")
//	active, err := document.FindByContains[Customer](ctx, store, "customer", map[string]any{"Active": true})
//	n, err := document.CountByJSONPath(ctx, store, "customer", `$.Orders[*] ? (@.Total > 100)`)
//
// Transaction Example:
//
//	err = store.Transaction(ctx, func(tx *document.Session) error {
//		if err := document.Save(ctx, tx, "customer", c.Id, c); err != nil {
//			return err // rolled back
//		}
//		return document.DeleteByID(ctx, tx, "cart", c.Id)
//	})
//
// Custom Statements:
//
//	names, err := document.CustomList(ctx, store,
//		"SELECT data->>'Name' FROM customer WHERE data @> @criteria",
//		query.Parameters{crit},
//		document.Scalar[string])
//
// Error Handling:
//
// Driver failures are re-tagged as ErrDuplicateKey (SQLSTATE 23505) or
// ErrConnection; the driver error stays in the chain. Nothing is retried.
// Updates and deletes matching no rows succeed silently; the ...Count
// variants report the number of affected rows.
//
// Thread Safety:
//
// Store and the adapters are safe for concurrent use. A Session is as safe
// as the connection it wraps; pgx transactions are not.
package document
