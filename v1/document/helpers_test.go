package document

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type Customer struct {
	Id     string
	Name   string
	Active bool
}

// fakeRows serves fixed column values row by row.
type fakeRows struct {
	values [][]any
	pos    int
	err    error
	closed bool
}

func rowsOf(values ...any) *fakeRows {
	r := &fakeRows{}
	for _, v := range values {
		r.values = append(r.values, []any{v})
	}
	return r
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.values[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

func (r *fakeRows) Err() error {
	return r.err
}

// newTestStore returns a store whose source hands out a mock querier.
func newTestStore(t *testing.T, cfg Config) (*Store, *MockQuerier, *MockConnectionSource) {
	t.Helper()
	ctrl := gomock.NewController(t)
	q := NewMockQuerier(ctrl)
	src := NewMockConnectionSource(ctrl)
	src.EXPECT().Querier().Return(q).AnyTimes()

	store, err := NewStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.UseSource(src))
	return store, q, src
}
