package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectByName(t *testing.T) {
	for _, name := range []string{DriverMySQL, DriverPostgres, DriverSQLite, DriverSQLServer} {
		d, err := DialectByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}

	_, err := DialectByName("oracle")
	assert.Error(t, err)
}

func TestDialect_Quote(t *testing.T) {
	my, _ := DialectByName(DriverMySQL)
	pg, _ := DialectByName(DriverPostgres)

	assert.Equal(t, "`order`", my.Quote("order"))
	assert.Equal(t, "`we``ird`", my.Quote("we`ird"))
	assert.Equal(t, `"we""ird"`, pg.Quote(`we"ird`))

	ms, _ := DialectByName(DriverSQLServer)
	assert.Equal(t, "[order]", ms.Quote("order"))
	assert.Equal(t, "[we]]ird]", ms.Quote("we]ird"))
}

func TestDialect_QualifiedTable(t *testing.T) {
	tbl := Table{Schema: "sales", Name: "orders"}

	my, _ := DialectByName(DriverMySQL)
	pg, _ := DialectByName(DriverPostgres)
	lite, _ := DialectByName(DriverSQLite)

	assert.Equal(t, "`orders`", my.QualifiedTable(tbl))
	assert.Equal(t, `"sales"."orders"`, pg.QualifiedTable(tbl))
	assert.Equal(t, `"sales"."orders"`, lite.QualifiedTable(tbl))

	ms, _ := DialectByName(DriverSQLServer)
	assert.Equal(t, "[sales].[orders]", ms.QualifiedTable(tbl))
}

func TestDialect_HashExpression(t *testing.T) {
	my, _ := DialectByName(DriverMySQL)
	expr, ok := my.HashExpression([]string{"id", "name"})
	assert.True(t, ok)
	assert.Equal(t, "TO_BASE64(UNHEX(SHA2(CONCAT(COALESCE(CAST(`id` AS CHAR), ''), COALESCE(CAST(`name` AS CHAR), '')), 256)))", expr)

	pg, _ := DialectByName(DriverPostgres)
	expr, ok = pg.HashExpression([]string{"id"})
	assert.True(t, ok)
	assert.Equal(t, `encode(sha256(convert_to(CONCAT(COALESCE(CAST("id" AS TEXT), '')), 'UTF8')), 'base64')`, expr)

	lite, _ := DialectByName(DriverSQLite)
	_, ok = lite.HashExpression([]string{"id"})
	assert.False(t, ok)

	ms, _ := DialectByName(DriverSQLServer)
	expr, ok = ms.HashExpression([]string{"id", "name"})
	assert.True(t, ok)
	assert.Equal(t, "CONVERT(VARCHAR(64), (SELECT HASHBYTES('SHA2_256', "+
		"ISNULL(CONVERT(NVARCHAR(MAX), [id]), N'') + ISNULL(CONVERT(NVARCHAR(MAX), [name]), N'')) "+
		"FOR XML PATH(''), BINARY BASE64))", expr)
}

func TestDialect_SQLServerCatalogQueries(t *testing.T) {
	ms, _ := DialectByName(DriverSQLServer)

	assert.Contains(t, ms.ListTablesQuery(), "FROM sys.tables")
	assert.Contains(t, ms.ListTablesQuery(), "is_ms_shipped = 0")
	assert.Contains(t, ms.ListTablesQuery(), "ORDER BY s.name, t.name")

	query, args := ms.ListColumnsQuery(Table{Schema: "dbo", Name: "Customers"})
	assert.Contains(t, query, "INFORMATION_SCHEMA.COLUMNS")
	assert.Contains(t, query, "ORDER BY ORDINAL_POSITION")
	assert.Equal(t, []any{"dbo", "Customers"}, args)
}
