package document

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/query"
)

// FindAll returns every document in the table.
func FindAll[T any](ctx context.Context, r Runner, table string) ([]T, error) {
	s, err := r.session()
	if err != nil {
		return nil, err
	}
	return list(ctx, s, "find_all", table, s.builder().FindAll(table), nil, FromData[T])
}

// FindByID returns the document with the given identity. The boolean is
// false when no document matches.
func FindByID[T any](ctx context.Context, r Runner, table, id string) (T, bool, error) {
	var zero T
	s, err := r.session()
	if err != nil {
		return zero, false, err
	}
	params := query.Parameters{query.IDParam(id)}
	docs, err := list(ctx, s, "find_by_id", table, s.builder().FindByID(table), params, FromData[T])
	if err != nil {
		return zero, false, err
	}
	switch len(docs) {
	case 0:
		return zero, false, nil
	case 1:
		return docs[0], true, nil
	default:
		return zero, false, ErrAmbiguousID
	}
}

// FindByContains returns every document containing criteria.
func FindByContains[T any](ctx context.Context, r Runner, table string, criteria any) ([]T, error) {
	s, err := r.session()
	if err != nil {
		return nil, err
	}
	contains, err := query.ContainsParam(s.store.Serializer(), criteria)
	if err != nil {
		return nil, err
	}
	params := query.Parameters{contains}
	return list(ctx, s, "find_by_contains", table, s.builder().FindByContains(table), params, FromData[T])
}

// FindByJSONPath returns every document matching path.
func FindByJSONPath[T any](ctx context.Context, r Runner, table, path string) ([]T, error) {
	s, err := r.session()
	if err != nil {
		return nil, err
	}
	params := query.Parameters{query.JSONPathParam(path)}
	return list(ctx, s, "find_by_json_path", table, s.builder().FindByJSONPath(table), params, FromData[T])
}

// FindFirstByContains returns one document containing criteria, if any.
func FindFirstByContains[T any](ctx context.Context, r Runner, table string, criteria any) (T, bool, error) {
	var zero T
	s, err := r.session()
	if err != nil {
		return zero, false, err
	}
	contains, err := query.ContainsParam(s.store.Serializer(), criteria)
	if err != nil {
		return zero, false, err
	}
	params := query.Parameters{contains}
	return single(ctx, s, "find_first_by_contains", table, s.builder().FindFirstByContains(table), params, FromData[T])
}

// FindFirstByJSONPath returns one document matching path, if any.
func FindFirstByJSONPath[T any](ctx context.Context, r Runner, table, path string) (T, bool, error) {
	var zero T
	s, err := r.session()
	if err != nil {
		return zero, false, err
	}
	params := query.Parameters{query.JSONPathParam(path)}
	return single(ctx, s, "find_first_by_json_path", table, s.builder().FindFirstByJSONPath(table), params, FromData[T])
}

// CountAll returns the number of documents in the table.
func CountAll(ctx context.Context, r Runner, table string) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	return scalar(ctx, s, "count_all", table, s.builder().CountAll(table), nil, Scalar[int64])
}

// CountByContains returns the number of documents containing criteria.
func CountByContains(ctx context.Context, r Runner, table string, criteria any) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	contains, err := query.ContainsParam(s.store.Serializer(), criteria)
	if err != nil {
		return 0, err
	}
	params := query.Parameters{contains}
	return scalar(ctx, s, "count_by_contains", table, s.builder().CountByContains(table), params, Scalar[int64])
}

// CountByJSONPath returns the number of documents matching path.
func CountByJSONPath(ctx context.Context, r Runner, table, path string) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	params := query.Parameters{query.JSONPathParam(path)}
	return scalar(ctx, s, "count_by_json_path", table, s.builder().CountByJSONPath(table), params, Scalar[int64])
}

// ExistsByID reports whether a document with the given identity exists.
func ExistsByID(ctx context.Context, r Runner, table, id string) (bool, error) {
	s, err := r.session()
	if err != nil {
		return false, err
	}
	params := query.Parameters{query.IDParam(id)}
	return scalar(ctx, s, "exists_by_id", table, s.builder().ExistsByID(table), params, Scalar[bool])
}

// ExistsByContains reports whether any document contains criteria.
func ExistsByContains(ctx context.Context, r Runner, table string, criteria any) (bool, error) {
	s, err := r.session()
	if err != nil {
		return false, err
	}
	contains, err := query.ContainsParam(s.store.Serializer(), criteria)
	if err != nil {
		return false, err
	}
	params := query.Parameters{contains}
	return scalar(ctx, s, "exists_by_contains", table, s.builder().ExistsByContains(table), params, Scalar[bool])
}

// ExistsByJSONPath reports whether any document matches path.
func ExistsByJSONPath(ctx context.Context, r Runner, table, path string) (bool, error) {
	s, err := r.session()
	if err != nil {
		return false, err
	}
	params := query.Parameters{query.JSONPathParam(path)}
	return scalar(ctx, s, "exists_by_json_path", table, s.builder().ExistsByJSONPath(table), params, Scalar[bool])
}
