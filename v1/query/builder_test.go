package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedKeyStatements(t *testing.T) {
	t.Parallel()
	b := NewBuilder(EmbeddedKey, "")

	tests := []struct {
		name    string
		got     string
		wantSQL string
	}{
		{"create table", b.CreateTable("test_table"), "CREATE TABLE IF NOT EXISTS test_table (data JSONB NOT NULL)"},
		{"create key index", b.CreateKeyIndex("app.test_table"), "CREATE UNIQUE INDEX IF NOT EXISTS idx_test_table_key ON app.test_table ((data ->> 'Id'))"},
		{"where by id", b.WhereByID("@id"), "data ->> 'Id' = @id"},
		{"insert", b.Insert("test_table"), "INSERT INTO test_table VALUES (@data)"},
		{"save", b.Save("test_table"), "INSERT INTO test_table VALUES (@data) ON CONFLICT ((data ->> 'Id')) DO UPDATE SET data = EXCLUDED.data"},
		{"update", b.Update("test_table"), "UPDATE test_table SET data = @data WHERE data ->> 'Id' = @id"},
		{"count all", b.CountAll("test_table"), "SELECT COUNT(*) AS it FROM test_table"},
		{"count by contains", b.CountByContains("test_table"), "SELECT COUNT(*) AS it FROM test_table WHERE data @> @criteria"},
		{"count by json path", b.CountByJSONPath("test_table"), "SELECT COUNT(*) AS it FROM test_table WHERE data @? @path::jsonpath"},
		{"exists by id", b.ExistsByID("test_table"), "SELECT EXISTS (SELECT 1 FROM test_table WHERE data ->> 'Id' = @id) AS it"},
		{"exists by contains", b.ExistsByContains("test_table"), "SELECT EXISTS (SELECT 1 FROM test_table WHERE data @> @criteria) AS it"},
		{"exists by json path", b.ExistsByJSONPath("test_table"), "SELECT EXISTS (SELECT 1 FROM test_table WHERE data @? @path::jsonpath) AS it"},
		{"find all", b.FindAll("test_table"), "SELECT data FROM test_table"},
		{"find by id", b.FindByID("test_table"), "SELECT data FROM test_table WHERE data ->> 'Id' = @id"},
		{"find by contains", b.FindByContains("test_table"), "SELECT data FROM test_table WHERE data @> @criteria"},
		{"find by json path", b.FindByJSONPath("test_table"), "SELECT data FROM test_table WHERE data @? @path::jsonpath"},
		{"find first by contains", b.FindFirstByContains("test_table"), "SELECT data FROM test_table WHERE data @> @criteria LIMIT 1"},
		{"find first by json path", b.FindFirstByJSONPath("test_table"), "SELECT data FROM test_table WHERE data @? @path::jsonpath LIMIT 1"},
		{"partial by id", b.UpdatePartialByID("test_table"), "UPDATE test_table SET data = data || @data WHERE data ->> 'Id' = @id"},
		{"partial by contains", b.UpdatePartialByContains("test_table"), "UPDATE test_table SET data = data || @data WHERE data @> @criteria"},
		{"partial by json path", b.UpdatePartialByJSONPath("test_table"), "UPDATE test_table SET data = data || @data WHERE data @? @path::jsonpath"},
		{"delete by id", b.DeleteByID("test_table"), "DELETE FROM test_table WHERE data ->> 'Id' = @id"},
		{"delete by contains", b.DeleteByContains("test_table"), "DELETE FROM test_table WHERE data @> @criteria"},
		{"delete by json path", b.DeleteByJSONPath("test_table"), "DELETE FROM test_table WHERE data @? @path::jsonpath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantSQL, tt.got)
		})
	}
}

func TestKeyColumnStatements(t *testing.T) {
	t.Parallel()
	b := NewBuilder(KeyColumn, "")

	tests := []struct {
		name    string
		got     string
		wantSQL string
	}{
		{"create table", b.CreateTable("test_table"), "CREATE TABLE IF NOT EXISTS test_table (id TEXT NOT NULL PRIMARY KEY, data JSONB NOT NULL)"},
		{"create key index", b.CreateKeyIndex("test_table"), ""},
		{"where by id", b.WhereByID("@id"), "id = @id"},
		{"insert", b.Insert("test_table"), "INSERT INTO test_table (id, data) VALUES (@id, @data)"},
		{"save", b.Save("test_table"), "INSERT INTO test_table (id, data) VALUES (@id, @data) ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data"},
		{"update", b.Update("test_table"), "UPDATE test_table SET data = @data WHERE id = @id"},
		{"count all", b.CountAll("test_table"), "SELECT COUNT(id) AS it FROM test_table"},
		{"count by contains", b.CountByContains("test_table"), "SELECT COUNT(id) AS it FROM test_table WHERE data @> @criteria"},
		{"exists by id", b.ExistsByID("test_table"), "SELECT EXISTS (SELECT 1 FROM test_table WHERE id = @id) AS it"},
		{"find by id", b.FindByID("test_table"), "SELECT data FROM test_table WHERE id = @id"},
		{"partial by id", b.UpdatePartialByID("test_table"), "UPDATE test_table SET data = data || @data WHERE id = @id"},
		{"delete by id", b.DeleteByID("test_table"), "DELETE FROM test_table WHERE id = @id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantSQL, tt.got)
		})
	}
}

func TestCustomIDField(t *testing.T) {
	t.Parallel()
	b := NewBuilder(EmbeddedKey, "key")

	assert.Equal(t, "SELECT data FROM people WHERE data ->> 'key' = @id", b.FindByID("people"))
	assert.Equal(t, "CREATE UNIQUE INDEX IF NOT EXISTS idx_people_key ON people ((data ->> 'key'))", b.CreateKeyIndex("people"))
	assert.Equal(t, "INSERT INTO people VALUES (@data) ON CONFLICT ((data ->> 'key')) DO UPDATE SET data = EXCLUDED.data", b.Save("people"))
}

func TestZeroBuilderIsEmbeddedKey(t *testing.T) {
	t.Parallel()
	var b Builder
	assert.Equal(t, NewBuilder(EmbeddedKey, DefaultIDField).FindByID("t"), b.FindByID("t"))
}
