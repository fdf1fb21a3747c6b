package document

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/query"
	"github.com/Aleph-Alpha/pgdoc/v1/serializer"
)

// Mapper converts the current row into a value. The serializer is the one
// configured on the store at the time of the call.
type Mapper[T any] func(row Row, s serializer.Serializer) (T, error)

// FromData maps a row whose first column is the JSON document text.
func FromData[T any](row Row, s serializer.Serializer) (T, error) {
	var text string
	if err := row.Scan(&text); err != nil {
		var zero T
		return zero, err
	}
	return serializer.Deserialize[T](s, text)
}

// Scalar maps a row whose first column scans directly into T, such as a
// COUNT or EXISTS result.
func Scalar[T any](row Row, _ serializer.Serializer) (T, error) {
	var value T
	err := row.Scan(&value)
	return value, err
}

// CustomList runs an arbitrary statement and maps every row.
func CustomList[T any](ctx context.Context, r Runner, sql string, params query.Parameters, mapper Mapper[T]) ([]T, error) {
	return list(ctx, r, "custom_list", "", sql, params, mapper)
}

// CustomSingle runs an arbitrary statement and maps its first row, if any.
func CustomSingle[T any](ctx context.Context, r Runner, sql string, params query.Parameters, mapper Mapper[T]) (T, bool, error) {
	return single(ctx, r, "custom_single", "", sql, params, mapper)
}

// CustomScalar runs a statement expected to yield exactly one row, such as
// an aggregate. It fails with ErrNoRows when the result is empty.
func CustomScalar[T any](ctx context.Context, r Runner, sql string, params query.Parameters, mapper Mapper[T]) (T, error) {
	return scalar(ctx, r, "custom_scalar", "", sql, params, mapper)
}

// CustomNonQuery runs a statement returning no rows and reports the number
// of affected rows.
func CustomNonQuery(ctx context.Context, r Runner, sql string, params query.Parameters) (int64, error) {
	s, err := r.session()
	if err != nil {
		return 0, err
	}
	return s.exec(ctx, "custom_non_query", "", sql, params)
}

func list[T any](ctx context.Context, r Runner, op, table, sql string, params query.Parameters, mapper Mapper[T]) ([]T, error) {
	s, err := r.session()
	if err != nil {
		return nil, err
	}
	ser := s.store.Serializer()

	results := make([]T, 0)
	err = s.query(ctx, op, table, sql, params, func(rows Rows) (int64, error) {
		for rows.Next() {
			value, err := mapper(rows, ser)
			if err != nil {
				return int64(len(results)), err
			}
			results = append(results, value)
		}
		return int64(len(results)), rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func single[T any](ctx context.Context, r Runner, op, table, sql string, params query.Parameters, mapper Mapper[T]) (T, bool, error) {
	var (
		result T
		found  bool
	)
	s, err := r.session()
	if err != nil {
		return result, false, err
	}
	ser := s.store.Serializer()

	err = s.query(ctx, op, table, sql, params, func(rows Rows) (int64, error) {
		if !rows.Next() {
			return 0, rows.Err()
		}
		value, err := mapper(rows, ser)
		if err != nil {
			return 0, err
		}
		result, found = value, true
		return 1, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return result, found, nil
}

func scalar[T any](ctx context.Context, r Runner, op, table, sql string, params query.Parameters, mapper Mapper[T]) (T, error) {
	value, found, err := single(ctx, r, op, table, sql, params, mapper)
	if err != nil {
		return value, err
	}
	if !found {
		return value, ErrNoRows
	}
	return value, nil
}
