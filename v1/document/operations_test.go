package document

import (
	"context"
	"errors"
	"testing"

	"github.com/Aleph-Alpha/pgdoc/v1/query"
	"github.com/Aleph-Alpha/pgdoc/v1/serializer"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEnsureTable(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		want     []string
	}{
		{
			name: "embedded key also creates the key index",
			want: []string{
				"CREATE TABLE IF NOT EXISTS customer (data JSONB NOT NULL)",
				"CREATE UNIQUE INDEX IF NOT EXISTS idx_customer_key ON customer ((data ->> 'Id'))",
			},
		},
		{
			name:     "key column",
			strategy: "key-column",
			want: []string{
				"CREATE TABLE IF NOT EXISTS customer (id TEXT NOT NULL PRIMARY KEY, data JSONB NOT NULL)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, q, _ := newTestStore(t, Config{Strategy: tt.strategy})
			var calls []any
			for _, sql := range tt.want {
				calls = append(calls, q.EXPECT().Exec(gomock.Any(), sql, gomock.Nil()).Return(int64(0), nil))
			}
			gomock.InOrder(calls...)

			require.NoError(t, EnsureTable(context.Background(), store, "customer"))
		})
	}
}

func TestEnsureIndex(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	ctx := context.Background()

	q.EXPECT().Exec(gomock.Any(), "CREATE INDEX IF NOT EXISTS idx_customer ON sales.customer USING GIN (data jsonb_path_ops)", gomock.Nil()).
		Return(int64(0), nil)
	require.NoError(t, EnsureIndex(ctx, store, "sales.customer", query.Optimized))

	err := EnsureIndex(ctx, store, "sales.customer", query.IndexVariant(7))
	assert.ErrorIs(t, err, query.ErrInvalidIndexVariant)
}

func TestEnsureKeyIndexIsNoOpForKeyColumn(t *testing.T) {
	store, _, _ := newTestStore(t, Config{Strategy: "key-column"})
	require.NoError(t, EnsureKeyIndex(context.Background(), store, "customer"))
}

func TestInsertKeyColumnBindsID(t *testing.T) {
	store, q, _ := newTestStore(t, Config{Strategy: "key-column"})

	q.EXPECT().Exec(gomock.Any(), "INSERT INTO customer (id, data) VALUES (@id, @data)", query.Parameters{
		query.IDParam("c1"),
		{Name: "@data", Value: query.JSONB(`{"Id":"c1","Name":"Ada","Active":true}`)},
	}).Return(int64(1), nil)

	require.NoError(t, Insert(context.Background(), store, "customer", "c1", Customer{Id: "c1", Name: "Ada", Active: true}))
}

func TestInsertDuplicateKey(t *testing.T) {
	tests := []struct {
		name   string
		driver error
	}{
		{name: "pgx", driver: &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}},
		{name: "lib/pq", driver: &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, q, _ := newTestStore(t, Config{})
			q.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), tt.driver)

			err := Insert(context.Background(), store, "customer", "c1", Customer{Id: "c1"})
			require.Error(t, err)
			assert.True(t, IsDuplicateKey(err))
			assert.False(t, IsConnection(err))
			assert.ErrorIs(t, err, tt.driver)
		})
	}
}

func TestDriverFailureIsConnectionError(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	driverErr := &pgconn.PgError{Code: "42501", Message: "permission denied for table customer"}
	q.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), driverErr)

	err := EnsureTable(context.Background(), store, "customer")
	assert.True(t, IsConnection(err))

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "42501", pgErr.Code)
}

func TestSaveUsesUpsert(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})

	q.EXPECT().Exec(gomock.Any(),
		"INSERT INTO customer VALUES (@data) ON CONFLICT ((data ->> 'Id')) DO UPDATE SET data = EXCLUDED.data",
		gomock.Any()).Return(int64(1), nil)

	require.NoError(t, Save(context.Background(), store, "customer", "c1", Customer{Id: "c1"}))
}

func TestUpdateZeroRowsIsNotAnError(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	ctx := context.Background()

	q.EXPECT().Exec(gomock.Any(), "UPDATE customer SET data = @data WHERE data ->> 'Id' = @id", gomock.Any()).
		Return(int64(0), nil).Times(2)

	require.NoError(t, Update(ctx, store, "customer", "missing", Customer{Id: "missing"}))

	n, err := UpdateCount(ctx, store, "customer", "missing", Customer{Id: "missing"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdatePartialParameters(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	ctx := context.Background()
	patch := map[string]any{"Active": false}

	q.EXPECT().Exec(gomock.Any(), "UPDATE customer SET data = data || @data WHERE data ->> 'Id' = @id", query.Parameters{
		query.IDParam("c1"),
		{Name: "@data", Value: query.JSONB(`{"Active":false}`)},
	}).Return(int64(1), nil)
	require.NoError(t, UpdatePartialByID(ctx, store, "customer", "c1", patch))

	q.EXPECT().Exec(gomock.Any(), "UPDATE customer SET data = data || @data WHERE data @> @criteria", query.Parameters{
		{Name: "@data", Value: query.JSONB(`{"Active":false}`)},
		{Name: "@criteria", Value: query.JSONB(`{"Name":"Ada"}`)},
	}).Return(int64(2), nil)
	n, err := UpdatePartialByContainsCount(ctx, store, "customer", map[string]any{"Name": "Ada"}, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	q.EXPECT().Exec(gomock.Any(), "UPDATE customer SET data = data || @data WHERE data @? @path::jsonpath", query.Parameters{
		{Name: "@data", Value: query.JSONB(`{"Active":false}`)},
		query.JSONPathParam(`$.Name ? (@ == "Ada")`),
	}).Return(int64(0), nil)
	require.NoError(t, UpdatePartialByJSONPath(ctx, store, "customer", `$.Name ? (@ == "Ada")`, patch))
}

func TestDeleteVariants(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	ctx := context.Background()

	q.EXPECT().Exec(gomock.Any(), "DELETE FROM customer WHERE data @> @criteria", query.Parameters{
		{Name: "@criteria", Value: query.JSONB(`{"Active":false}`)},
	}).Return(int64(0), nil)
	require.NoError(t, DeleteByContains(ctx, store, "customer", map[string]any{"Active": false}))

	q.EXPECT().Exec(gomock.Any(), "DELETE FROM customer WHERE data @? @path::jsonpath", query.Parameters{
		query.JSONPathParam("$.Orders[*]"),
	}).Return(int64(4), nil)
	n, err := DeleteByJSONPathCount(ctx, store, "customer", "$.Orders[*]")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestFindByID(t *testing.T) {
	const sql = "SELECT data FROM customer WHERE data ->> 'Id' = @id"
	params := query.Parameters{query.IDParam("c1")}

	t.Run("found", func(t *testing.T) {
		store, q, _ := newTestStore(t, Config{})
		rows := rowsOf(`{"Id":"c1","Name":"Ada","Active":true}`)
		q.EXPECT().Query(gomock.Any(), sql, params).Return(rows, nil)

		c, ok, err := FindByID[Customer](context.Background(), store, "customer", "c1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, Customer{Id: "c1", Name: "Ada", Active: true}, c)
		assert.True(t, rows.closed)
	})

	t.Run("absent", func(t *testing.T) {
		store, q, _ := newTestStore(t, Config{})
		q.EXPECT().Query(gomock.Any(), sql, params).Return(rowsOf(), nil)

		c, ok, err := FindByID[Customer](context.Background(), store, "customer", "c1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, c)
	})

	t.Run("ambiguous", func(t *testing.T) {
		store, q, _ := newTestStore(t, Config{})
		q.EXPECT().Query(gomock.Any(), sql, params).Return(rowsOf(`{"Id":"c1"}`, `{"Id":"c1"}`), nil)

		_, _, err := FindByID[Customer](context.Background(), store, "customer", "c1")
		assert.ErrorIs(t, err, ErrAmbiguousID)
	})
}

func TestFindByContains(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})

	q.EXPECT().Query(gomock.Any(), "SELECT data FROM customer WHERE data @> @criteria", query.Parameters{
		{Name: "@criteria", Value: query.JSONB(`{"Active":true}`)},
	}).Return(rowsOf(`{"Id":"a","Active":true}`, `{"Id":"b","Active":true}`), nil)

	docs, err := FindByContains[Customer](context.Background(), store, "customer", map[string]any{"Active": true})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Id)
	assert.Equal(t, "b", docs[1].Id)
}

func TestFindAllEmptyIsNotNil(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	q.EXPECT().Query(gomock.Any(), "SELECT data FROM customer", gomock.Nil()).Return(rowsOf(), nil)

	docs, err := FindAll[Customer](context.Background(), store, "customer")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestFindFirstByJSONPath(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	rows := rowsOf(`{"Id":"a"}`, `{"Id":"b"}`)
	q.EXPECT().Query(gomock.Any(), "SELECT data FROM customer WHERE data @? @path::jsonpath LIMIT 1", gomock.Any()).
		Return(rows, nil)

	c, ok, err := FindFirstByJSONPath[Customer](context.Background(), store, "customer", "$.Id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", c.Id)
	assert.True(t, rows.closed)
}

func TestDeserializationFailure(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	q.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(rowsOf(`{"Id": 42}`), nil)

	_, err := FindAll[Customer](context.Background(), store, "customer")
	require.Error(t, err)
	assert.True(t, serializer.IsDeserializationError(err))
	assert.False(t, IsConnection(err))
}

func TestRowIterationFailureIsConnectionError(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	rows := rowsOf()
	rows.err = errors.New("unexpected EOF")
	q.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)

	_, err := FindAll[Customer](context.Background(), store, "customer")
	assert.True(t, IsConnection(err))
}

func TestCountAndExists(t *testing.T) {
	store, q, _ := newTestStore(t, Config{Strategy: "key-column"})
	ctx := context.Background()

	q.EXPECT().Query(gomock.Any(), "SELECT COUNT(id) AS it FROM customer", gomock.Nil()).Return(rowsOf(int64(5)), nil)
	n, err := CountAll(ctx, store, "customer")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	q.EXPECT().Query(gomock.Any(), "SELECT COUNT(id) AS it FROM customer WHERE data @> @criteria", gomock.Any()).
		Return(rowsOf(int64(2)), nil)
	n, err = CountByContains(ctx, store, "customer", map[string]any{"Active": true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	q.EXPECT().Query(gomock.Any(), "SELECT EXISTS (SELECT 1 FROM customer WHERE id = @id) AS it", query.Parameters{query.IDParam("c1")}).
		Return(rowsOf(true), nil)
	ok, err := ExistsByID(ctx, store, "customer", "c1")
	require.NoError(t, err)
	assert.True(t, ok)

	q.EXPECT().Query(gomock.Any(), "SELECT EXISTS (SELECT 1 FROM customer WHERE data @? @path::jsonpath) AS it", gomock.Any()).
		Return(rowsOf(false), nil)
	ok, err = ExistsByJSONPath(ctx, store, "customer", "$.Missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCustomOperations(t *testing.T) {
	store, q, _ := newTestStore(t, Config{})
	ctx := context.Background()
	crit := query.Param("criteria", query.JSONB(`{"Active":true}`))
	const names = "SELECT data ->> 'Name' FROM customer WHERE data @> @criteria"

	q.EXPECT().Query(gomock.Any(), names, query.Parameters{crit}).Return(rowsOf("Ada", "Grace"), nil)
	got, err := CustomList(ctx, store, names, query.Parameters{crit}, Scalar[string])
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Grace"}, got)

	q.EXPECT().Query(gomock.Any(), "SELECT data FROM customer", gomock.Nil()).Return(rowsOf(), nil)
	_, ok, err := CustomSingle(ctx, store, "SELECT data FROM customer", nil, FromData[Customer])
	require.NoError(t, err)
	assert.False(t, ok)

	q.EXPECT().Query(gomock.Any(), "SELECT MAX(1)", gomock.Nil()).Return(rowsOf(), nil)
	_, err = CustomScalar(ctx, store, "SELECT MAX(1)", nil, Scalar[int64])
	assert.ErrorIs(t, err, ErrNoRows)

	q.EXPECT().Exec(gomock.Any(), "TRUNCATE customer", gomock.Nil()).Return(int64(0), nil)
	_, err = CustomNonQuery(ctx, store, "TRUNCATE customer", nil)
	require.NoError(t, err)
}
