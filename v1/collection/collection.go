// Package collection offers a typed view of one document table.
//
//	customers := collection.New[Customer](store, "customer")
//	if err := customers.EnsureTable(ctx, nil); err != nil {
//		return err
//	}
//	err := customers.InsertFunc(ctx, func(c Customer) string { return c.Id }, c)
//	found, err := customers.Get(ctx, "c1") // nil when absent
//
// A Collection is a thin wrapper: every method forwards to the matching
// document operation on the collection's runner.
package collection

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/Aleph-Alpha/pgdoc/v1/query"
	"github.com/Aleph-Alpha/pgdoc/v1/serializer"
)

// Collection is the table named Table holding documents of type T.
type Collection[T any] struct {
	runner document.Runner
	table  string
}

// New returns a collection running on r, which is usually the *document.Store.
func New[T any](r document.Runner, table string) *Collection[T] {
	return &Collection[T]{runner: r, table: table}
}

// Table returns the table name.
func (c *Collection[T]) Table() string {
	return c.table
}

// With returns the same collection running on r, typically a transaction session.
func (c *Collection[T]) With(r document.Runner) *Collection[T] {
	return &Collection[T]{runner: r, table: c.table}
}

// EnsureTable creates the table and, when variant is not nil, its GIN index.
func (c *Collection[T]) EnsureTable(ctx context.Context, variant *query.IndexVariant) error {
	if err := document.EnsureTable(ctx, c.runner, c.table); err != nil {
		return err
	}
	if variant == nil {
		return nil
	}
	return document.EnsureIndex(ctx, c.runner, c.table, *variant)
}

// Insert adds doc under id. An existing identity fails with document.ErrDuplicateKey.
func (c *Collection[T]) Insert(ctx context.Context, id string, doc T) error {
	return document.Insert(ctx, c.runner, c.table, id, doc)
}

// InsertFunc inserts doc under the identity idFunc derives from it.
func (c *Collection[T]) InsertFunc(ctx context.Context, idFunc func(T) string, doc T) error {
	return c.Insert(ctx, idFunc(doc), doc)
}

// Save inserts doc under id or replaces the document already stored there.
func (c *Collection[T]) Save(ctx context.Context, id string, doc T) error {
	return document.Save(ctx, c.runner, c.table, id, doc)
}

// SaveFunc saves doc under the identity idFunc derives from it.
func (c *Collection[T]) SaveFunc(ctx context.Context, idFunc func(T) string, doc T) error {
	return c.Save(ctx, idFunc(doc), doc)
}

// Update replaces the document with the given identity. A missing identity is not an error.
func (c *Collection[T]) Update(ctx context.Context, id string, doc T) error {
	return document.Update(ctx, c.runner, c.table, id, doc)
}

// UpdateFunc replaces the document with the identity idFunc derives from doc.
func (c *Collection[T]) UpdateFunc(ctx context.Context, idFunc func(T) string, doc T) error {
	return c.Update(ctx, idFunc(doc), doc)
}

// Get returns the document with the given identity, or nil when absent.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, ok, err := document.FindByID[T](ctx, c.runner, c.table, id)
	return pointer(doc, ok, err)
}

// Find returns the document with the given identity as an Optional.
func (c *Collection[T]) Find(ctx context.Context, id string) (serializer.Optional[T], error) {
	doc, ok, err := document.FindByID[T](ctx, c.runner, c.table, id)
	if err != nil || !ok {
		return serializer.None[T](), err
	}
	return serializer.Some(doc), nil
}

// All returns every document in the collection, in no particular order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	return document.FindAll[T](ctx, c.runner, c.table)
}

// WhereContains returns the documents containing criteria (JSONB @>).
func (c *Collection[T]) WhereContains(ctx context.Context, criteria any) ([]T, error) {
	return document.FindByContains[T](ctx, c.runner, c.table, criteria)
}

// WhereJSONPath returns the documents matching the JSON-Path predicate path.
func (c *Collection[T]) WhereJSONPath(ctx context.Context, path string) ([]T, error) {
	return document.FindByJSONPath[T](ctx, c.runner, c.table, path)
}

// FirstWhereContains returns one document containing criteria, or nil.
func (c *Collection[T]) FirstWhereContains(ctx context.Context, criteria any) (*T, error) {
	return pointer[T](document.FindFirstByContains[T](ctx, c.runner, c.table, criteria))
}

// FirstWhereJSONPath returns one document matching path, or nil.
func (c *Collection[T]) FirstWhereJSONPath(ctx context.Context, path string) (*T, error) {
	return pointer[T](document.FindFirstByJSONPath[T](ctx, c.runner, c.table, path))
}

// Count returns the number of documents in the collection.
func (c *Collection[T]) Count(ctx context.Context) (int64, error) {
	return document.CountAll(ctx, c.runner, c.table)
}

// CountWhereContains counts the documents containing criteria.
func (c *Collection[T]) CountWhereContains(ctx context.Context, criteria any) (int64, error) {
	return document.CountByContains(ctx, c.runner, c.table, criteria)
}

// CountWhereJSONPath counts the documents matching path.
func (c *Collection[T]) CountWhereJSONPath(ctx context.Context, path string) (int64, error) {
	return document.CountByJSONPath(ctx, c.runner, c.table, path)
}

// Exists reports whether a document with the given identity is stored.
func (c *Collection[T]) Exists(ctx context.Context, id string) (bool, error) {
	return document.ExistsByID(ctx, c.runner, c.table, id)
}

// ExistsWhereContains reports whether any document contains criteria.
func (c *Collection[T]) ExistsWhereContains(ctx context.Context, criteria any) (bool, error) {
	return document.ExistsByContains(ctx, c.runner, c.table, criteria)
}

// ExistsWhereJSONPath reports whether any document matches path.
func (c *Collection[T]) ExistsWhereJSONPath(ctx context.Context, path string) (bool, error) {
	return document.ExistsByJSONPath(ctx, c.runner, c.table, path)
}

// Patch merges patch into the top level of the document with the given identity.
func (c *Collection[T]) Patch(ctx context.Context, id string, patch any) error {
	return document.UpdatePartialByID(ctx, c.runner, c.table, id, patch)
}

// PatchWhereContains merges patch into every document containing criteria.
func (c *Collection[T]) PatchWhereContains(ctx context.Context, criteria, patch any) error {
	return document.UpdatePartialByContains(ctx, c.runner, c.table, criteria, patch)
}

// PatchWhereJSONPath merges patch into every document matching path.
func (c *Collection[T]) PatchWhereJSONPath(ctx context.Context, path string, patch any) error {
	return document.UpdatePartialByJSONPath(ctx, c.runner, c.table, path, patch)
}

// Delete removes the document with the given identity. A missing identity is not an error.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return document.DeleteByID(ctx, c.runner, c.table, id)
}

// DeleteWhereContains removes every document containing criteria.
func (c *Collection[T]) DeleteWhereContains(ctx context.Context, criteria any) error {
	return document.DeleteByContains(ctx, c.runner, c.table, criteria)
}

// DeleteWhereJSONPath removes every document matching path.
func (c *Collection[T]) DeleteWhereJSONPath(ctx context.Context, path string) error {
	return document.DeleteByJSONPath(ctx, c.runner, c.table, path)
}

func pointer[T any](doc T, ok bool, err error) (*T, error) {
	if err != nil || !ok {
		return nil, err
	}
	return &doc, nil
}
