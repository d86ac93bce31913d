package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Dialect captures the SQL differences between supported engines.
type Dialect interface {
	// Name returns the gorm dialector name (mysql, postgres, sqlite, sqlserver).
	Name() string
	// Quote quotes a single identifier.
	Quote(ident string) string
	// QualifiedTable returns the quoted table reference used in FROM clauses.
	QualifiedTable(t Table) string
	// ListTablesQuery returns the query listing user tables as (schema, name) rows,
	// ordered by schema then table.
	ListTablesQuery() string
	// ListColumnsQuery returns the query listing column names of t in ordinal order.
	ListColumnsQuery(t Table) (string, []any)
	// CanonicalText returns an expression converting column to text with NULL mapped to ''.
	CanonicalText(column string) string
	// HashExpression returns an expression computing the base64 SHA-256 digest of the
	// concatenated canonical text of columns. ok is false when the engine has no digest function.
	HashExpression(columns []string) (expr string, ok bool)
}

var dialects = map[string]Dialect{
	DriverMySQL:     mysqlDialect{},
	DriverPostgres:  postgresDialect{},
	DriverSQLite:    sqliteDialect{},
	DriverSQLServer: sqlserverDialect{},
}

// DialectFor resolves the dialect of an open connection.
func DialectFor(db *gorm.DB) (Dialect, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return DialectByName(db.Dialector.Name())
}

// DialectByName resolves a dialect from a driver name.
func DialectByName(name string) (Dialect, error) {
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect: %s", name)
	}
	return d, nil
}

func quoteWith(ident, q string) string {
	return q + strings.ReplaceAll(ident, q, q+q) + q
}

func concat(d Dialect, columns []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = d.CanonicalText(c)
	}
	return "CONCAT(" + strings.Join(parts, ", ") + ")"
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return DriverMySQL }

func (mysqlDialect) Quote(ident string) string { return quoteWith(ident, "`") }

// MySQL schemas are databases; the connection's default database is the one compared,
// so the table is referenced unqualified on both sides.
func (d mysqlDialect) QualifiedTable(t Table) string { return d.Quote(t.Name) }

func (mysqlDialect) ListTablesQuery() string {
	return `SELECT TABLE_SCHEMA, TABLE_NAME
FROM information_schema.TABLES
WHERE TABLE_TYPE = 'BASE TABLE' AND TABLE_SCHEMA = DATABASE()
ORDER BY TABLE_SCHEMA, TABLE_NAME`
}

func (mysqlDialect) ListColumnsQuery(t Table) (string, []any) {
	return `SELECT COLUMN_NAME
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`, []any{t.Name}
}

func (d mysqlDialect) CanonicalText(column string) string {
	return "COALESCE(CAST(" + d.Quote(column) + " AS CHAR), '')"
}

func (d mysqlDialect) HashExpression(columns []string) (string, bool) {
	return "TO_BASE64(UNHEX(SHA2(" + concat(d, columns) + ", 256)))", true
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return DriverPostgres }

func (postgresDialect) Quote(ident string) string { return quoteWith(ident, `"`) }

func (d postgresDialect) QualifiedTable(t Table) string {
	return d.Quote(t.Schema) + "." + d.Quote(t.Name)
}

func (postgresDialect) ListTablesQuery() string {
	return `SELECT table_schema, table_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE'
  AND table_schema NOT IN ('pg_catalog', 'information_schema')
  AND table_schema NOT LIKE 'pg\_%'
ORDER BY table_schema, table_name`
}

func (postgresDialect) ListColumnsQuery(t Table) (string, []any) {
	return `SELECT column_name
FROM information_schema.columns
WHERE table_schema = ? AND table_name = ?
ORDER BY ordinal_position`, []any{t.Schema, t.Name}
}

func (d postgresDialect) CanonicalText(column string) string {
	return "COALESCE(CAST(" + d.Quote(column) + " AS TEXT), '')"
}

func (d postgresDialect) HashExpression(columns []string) (string, bool) {
	return "encode(sha256(convert_to(" + concat(d, columns) + ", 'UTF8')), 'base64')", true
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return DriverSQLite }

func (sqliteDialect) Quote(ident string) string { return quoteWith(ident, `"`) }

func (d sqliteDialect) QualifiedTable(t Table) string {
	return d.Quote(t.Schema) + "." + d.Quote(t.Name)
}

func (sqliteDialect) ListTablesQuery() string {
	return `SELECT 'main', name
FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
ORDER BY name`
}

func (sqliteDialect) ListColumnsQuery(t Table) (string, []any) {
	return `SELECT name FROM pragma_table_info(?) ORDER BY cid`, []any{t.Name}
}

func (d sqliteDialect) CanonicalText(column string) string {
	return "COALESCE(CAST(" + d.Quote(column) + " AS TEXT), '')"
}

// SQLite ships no digest function; rows are hashed client side.
func (sqliteDialect) HashExpression([]string) (string, bool) {
	return "", false
}

type sqlserverDialect struct{}

func (sqlserverDialect) Name() string { return DriverSQLServer }

func (sqlserverDialect) Quote(ident string) string {
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
}

func (d sqlserverDialect) QualifiedTable(t Table) string {
	return d.Quote(t.Schema) + "." + d.Quote(t.Name)
}

func (sqlserverDialect) ListTablesQuery() string {
	return `SELECT s.name, t.name
FROM sys.tables t
JOIN sys.schemas s ON s.schema_id = t.schema_id
WHERE t.is_ms_shipped = 0
ORDER BY s.name, t.name`
}

func (sqlserverDialect) ListColumnsQuery(t Table) (string, []any) {
	return `SELECT COLUMN_NAME
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`, []any{t.Schema, t.Name}
}

func (d sqlserverDialect) CanonicalText(column string) string {
	return "ISNULL(CONVERT(NVARCHAR(MAX), " + d.Quote(column) + "), N'')"
}

// CONCAT is capped at 254 arguments, so values are joined with + on NVARCHAR(MAX).
// HASHBYTES digests the UTF-16 text, so fingerprints only match other sqlserver
// fingerprints; mixed engines fall back to client side hashing.
func (d sqlserverDialect) HashExpression(columns []string) (string, bool) {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = d.CanonicalText(c)
	}
	digest := "HASHBYTES('SHA2_256', " + strings.Join(parts, " + ") + ")"
	return "CONVERT(VARCHAR(64), (SELECT " + digest + " FOR XML PATH(''), BINARY BASE64))", true
}
