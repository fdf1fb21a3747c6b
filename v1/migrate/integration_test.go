package migrate_test

import (
	"context"
	"testing"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/Aleph-Alpha/pgdoc/v1/migrate"
	"github.com/Aleph-Alpha/pgdoc/v1/postgres"
	"github.com/Aleph-Alpha/pgdoc/v1/postgres/postgrestest"
	"github.com/Aleph-Alpha/pgdoc/v1/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Item struct {
	Id   string
	Name string
}

func TestKeyColumnToEmbeddedAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	container, err := postgrestest.Start(ctx)
	require.NoError(t, err)
	defer func() { _ = container.Terminate(ctx) }()

	pool, err := postgres.NewPool(ctx, container.Config)
	require.NoError(t, err)

	store, err := document.NewStore(document.Config{Strategy: "key-column"})
	require.NoError(t, err)
	require.NoError(t, store.UseSource(pool))
	defer store.Close()

	const table = "legacy_items"
	require.NoError(t, document.EnsureTable(ctx, store, table))
	require.NoError(t, document.Insert(ctx, store, table, "a", Item{Id: "a", Name: "has id"}))
	require.NoError(t, document.Insert(ctx, store, table, "b", map[string]any{"Name": "no id"}))

	result, err := migrate.KeyColumnToEmbedded(ctx, store, table, "Id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Backfilled)
	assert.False(t, result.AlreadyMigrated)

	store.UseStrategy(query.EmbeddedKey)

	item, ok, err := document.FindByID[Item](ctx, store, table, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Item{Id: "b", Name: "no id"}, item)

	err = document.Insert(ctx, store, table, "a", Item{Id: "a"})
	assert.True(t, document.IsDuplicateKey(err))

	again, err := migrate.KeyColumnToEmbedded(ctx, store, table, "Id")
	require.NoError(t, err)
	assert.True(t, again.AlreadyMigrated)
}
