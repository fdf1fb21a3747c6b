package query

import "fmt"

// DefaultIDField is the document field holding the identity for EmbeddedKey tables.
const DefaultIDField = "Id"

// Placeholder names used by the built statements.
const (
	ParamID       = "@id"
	ParamData     = "@data"
	ParamCriteria = "@criteria"
	ParamPath     = "@path"
)

// Builder produces statements for one table strategy and identity field.
// The zero value is an EmbeddedKey builder using DefaultIDField.
type Builder struct {
	Strategy Strategy
	IDField  string
}

// NewBuilder returns a Builder; an empty idField selects DefaultIDField.
func NewBuilder(strategy Strategy, idField string) Builder {
	return Builder{Strategy: strategy, IDField: idField}
}

func (b Builder) idField() string {
	if b.IDField == "" {
		return DefaultIDField
	}
	return b.IDField
}

// keyExpression is the SQL expression holding the identity of a row.
func (b Builder) keyExpression() string {
	if b.Strategy == KeyColumn {
		return "id"
	}
	return fmt.Sprintf("(data ->> '%s')", b.idField())
}

func (b Builder) countExpression() string {
	if b.Strategy == KeyColumn {
		return "COUNT(id)"
	}
	return "COUNT(*)"
}

// SelectFromTable is the base projection every find statement extends.
func SelectFromTable(table string) string {
	return fmt.Sprintf("SELECT data FROM %s", table)
}

// WhereByID compares the row identity to param.
func (b Builder) WhereByID(param string) string {
	if b.Strategy == KeyColumn {
		return "id = " + param
	}
	return fmt.Sprintf("data ->> '%s' = %s", b.idField(), param)
}

// WhereDataContains matches documents containing the JSON bound to param.
func WhereDataContains(param string) string {
	return "data @> " + param
}

// WhereJSONPathMatches matches documents for which the JSON-Path bound to
// param returns any item.
func WhereJSONPathMatches(param string) string {
	return fmt.Sprintf("data @? %s::jsonpath", param)
}

// Insert binds @id (KeyColumn only) and @data.
func (b Builder) Insert(table string) string {
	if b.Strategy == KeyColumn {
		return fmt.Sprintf("INSERT INTO %s (id, data) VALUES (%s, %s)", table, ParamID, ParamData)
	}
	return fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, ParamData)
}

// Save is Insert turned into an upsert on the identity.
func (b Builder) Save(table string) string {
	return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET data = EXCLUDED.data", b.Insert(table), b.keyExpression())
}

// Update replaces the whole document matching @id with @data.
func (b Builder) Update(table string) string {
	return fmt.Sprintf("UPDATE %s SET data = %s WHERE %s", table, ParamData, b.WhereByID(ParamID))
}

func (b Builder) count(table, where string) string {
	if where == "" {
		return fmt.Sprintf("SELECT %s AS it FROM %s", b.countExpression(), table)
	}
	return fmt.Sprintf("SELECT %s AS it FROM %s WHERE %s", b.countExpression(), table, where)
}

// CountAll counts every document in table.
func (b Builder) CountAll(table string) string {
	return b.count(table, "")
}

// CountByContains counts documents matching @criteria.
func (b Builder) CountByContains(table string) string {
	return b.count(table, WhereDataContains(ParamCriteria))
}

// CountByJSONPath counts documents matching @path.
func (b Builder) CountByJSONPath(table string) string {
	return b.count(table, WhereJSONPathMatches(ParamPath))
}

func exists(table, where string) string {
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s) AS it", table, where)
}

// ExistsByID reports whether a document with @id exists.
func (b Builder) ExistsByID(table string) string {
	return exists(table, b.WhereByID(ParamID))
}

// ExistsByContains reports whether any document matches @criteria.
func (b Builder) ExistsByContains(table string) string {
	return exists(table, WhereDataContains(ParamCriteria))
}

// ExistsByJSONPath reports whether any document matches @path.
func (b Builder) ExistsByJSONPath(table string) string {
	return exists(table, WhereJSONPathMatches(ParamPath))
}

// FindAll selects every document in table.
func (b Builder) FindAll(table string) string {
	return SelectFromTable(table)
}

// FindByID selects the document with @id.
func (b Builder) FindByID(table string) string {
	return fmt.Sprintf("%s WHERE %s", SelectFromTable(table), b.WhereByID(ParamID))
}

// FindByContains selects documents matching @criteria.
func (b Builder) FindByContains(table string) string {
	return fmt.Sprintf("%s WHERE %s", SelectFromTable(table), WhereDataContains(ParamCriteria))
}

// FindByJSONPath selects documents matching @path.
func (b Builder) FindByJSONPath(table string) string {
	return fmt.Sprintf("%s WHERE %s", SelectFromTable(table), WhereJSONPathMatches(ParamPath))
}

// FindFirstByContains selects at most one document matching @criteria.
func (b Builder) FindFirstByContains(table string) string {
	return b.FindByContains(table) + " LIMIT 1"
}

// FindFirstByJSONPath selects at most one document matching @path.
func (b Builder) FindFirstByJSONPath(table string) string {
	return b.FindByJSONPath(table) + " LIMIT 1"
}

func partial(table, where string) string {
	return fmt.Sprintf("UPDATE %s SET data = data || %s WHERE %s", table, ParamData, where)
}

// UpdatePartialByID shallow-merges @data into the document with @id.
func (b Builder) UpdatePartialByID(table string) string {
	return partial(table, b.WhereByID(ParamID))
}

// UpdatePartialByContains shallow-merges @data into documents matching @criteria.
func (b Builder) UpdatePartialByContains(table string) string {
	return partial(table, WhereDataContains(ParamCriteria))
}

// UpdatePartialByJSONPath shallow-merges @data into documents matching @path.
func (b Builder) UpdatePartialByJSONPath(table string) string {
	return partial(table, WhereJSONPathMatches(ParamPath))
}

// DeleteByID deletes the document with @id.
func (b Builder) DeleteByID(table string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", table, b.WhereByID(ParamID))
}

// DeleteByContains deletes documents matching @criteria.
func (b Builder) DeleteByContains(table string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", table, WhereDataContains(ParamCriteria))
}

// DeleteByJSONPath deletes documents matching @path.
func (b Builder) DeleteByJSONPath(table string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", table, WhereJSONPathMatches(ParamPath))
}
