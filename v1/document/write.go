package document

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/query"
)

// Insert adds a new document. It fails with ErrDuplicateKey when a document
// with the same identity exists. Under the embedded-key layout the identity
// is read from the document itself and id is only informational.
func Insert(ctx context.Context, r Runner, table, id string, doc any) error {
	s, err := r.session()
	if err != nil {
		return err
	}
	params, err := query.DocParams(s.store.Serializer(), id, doc)
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, "insert", table, s.builder().Insert(table), params)
	return err
}

// Save inserts the document or replaces the existing one with the same identity.
func Save(ctx context.Context, r Runner, table, id string, doc any) error {
	s, err := r.session()
	if err != nil {
		return err
	}
	params, err := query.DocParams(s.store.Serializer(), id, doc)
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, "save", table, s.builder().Save(table), params)
	return err
}

// Update replaces the document with the given identity. Matching nothing is
// not an error.
func Update(ctx context.Context, r Runner, table, id string, doc any) error {
	_, err := UpdateCount(ctx, r, table, id, doc)
	return err
}

// UpdateCount is Update reporting the number of replaced documents.
func UpdateCount(ctx context.Context, r Runner, table, id string, doc any) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	params, err := query.DocParams(s.store.Serializer(), id, doc)
	if err != nil {
		return 0, err
	}
	return s.exec(ctx, "update", table, s.builder().Update(table), params)
}

// UpdatePartialByID merges patch into the top level of the document with the
// given identity.
func UpdatePartialByID(ctx context.Context, r Runner, table, id string, patch any) error {
	_, err := UpdatePartialByIDCount(ctx, r, table, id, patch)
	return err
}

// UpdatePartialByIDCount is UpdatePartialByID reporting the number of patched documents.
func UpdatePartialByIDCount(ctx context.Context, r Runner, table, id string, patch any) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	data, err := query.DataParam(s.store.Serializer(), patch)
	if err != nil {
		return 0, err
	}
	params := query.Parameters{query.IDParam(id), data}
	return s.exec(ctx, "update_partial_by_id", table, s.builder().UpdatePartialByID(table), params)
}

// UpdatePartialByContains merges patch into every document containing criteria.
func UpdatePartialByContains(ctx context.Context, r Runner, table string, criteria, patch any) error {
	_, err := UpdatePartialByContainsCount(ctx, r, table, criteria, patch)
	return err
}

// UpdatePartialByContainsCount is UpdatePartialByContains reporting the number of patched documents.
func UpdatePartialByContainsCount(ctx context.Context, r Runner, table string, criteria, patch any) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	ser := s.store.Serializer()
	data, err := query.DataParam(ser, patch)
	if err != nil {
		return 0, err
	}
	contains, err := query.ContainsParam(ser, criteria)
	if err != nil {
		return 0, err
	}
	params := query.Parameters{data, contains}
	return s.exec(ctx, "update_partial_by_contains", table, s.builder().UpdatePartialByContains(table), params)
}

// UpdatePartialByJSONPath merges patch into every document matching path.
func UpdatePartialByJSONPath(ctx context.Context, r Runner, table, path string, patch any) error {
	_, err := UpdatePartialByJSONPathCount(ctx, r, table, path, patch)
	return err
}

// UpdatePartialByJSONPathCount is UpdatePartialByJSONPath reporting the number of patched documents.
func UpdatePartialByJSONPathCount(ctx context.Context, r Runner, table, path string, patch any) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	data, err := query.DataParam(s.store.Serializer(), patch)
	if err != nil {
		return 0, err
	}
	params := query.Parameters{data, query.JSONPathParam(path)}
	return s.exec(ctx, "update_partial_by_json_path", table, s.builder().UpdatePartialByJSONPath(table), params)
}

// DeleteByID removes the document with the given identity, if any.
func DeleteByID(ctx context.Context, r Runner, table, id string) error {
	_, err := DeleteByIDCount(ctx, r, table, id)
	return err
}

// DeleteByIDCount is DeleteByID reporting the number of removed documents.
func DeleteByIDCount(ctx context.Context, r Runner, table, id string) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	params := query.Parameters{query.IDParam(id)}
	return s.exec(ctx, "delete_by_id", table, s.builder().DeleteByID(table), params)
}

// DeleteByContains removes every document containing criteria.
func DeleteByContains(ctx context.Context, r Runner, table string, criteria any) error {
	_, err := DeleteByContainsCount(ctx, r, table, criteria)
	return err
}

// DeleteByContainsCount is DeleteByContains reporting the number of removed documents.
func DeleteByContainsCount(ctx context.Context, r Runner, table string, criteria any) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	contains, err := query.ContainsParam(s.store.Serializer(), criteria)
	if err != nil {
		return 0, err
	}
	params := query.Parameters{contains}
	return s.exec(ctx, "delete_by_contains", table, s.builder().DeleteByContains(table), params)
}

// DeleteByJSONPath removes every document matching path.
func DeleteByJSONPath(ctx context.Context, r Runner, table, path string) error {
	_, err := DeleteByJSONPathCount(ctx, r, table, path)
	return err
}

// DeleteByJSONPathCount is DeleteByJSONPath reporting the number of removed documents.
func DeleteByJSONPathCount(ctx context.Context, r Runner, table, path string) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	params := query.Parameters{query.JSONPathParam(path)}
	return s.exec(ctx, "delete_by_json_path", table, s.builder().DeleteByJSONPath(table), params)
}
