package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Table identifies one user table.
type Table struct {
	Schema string `json:"schema"`
	Name   string `json:"name"`
}

// FullName returns the "schema.table" form matched by exclusion patterns.
func (t Table) FullName() string {
	return t.Schema + "." + t.Name
}

func (t Table) String() string {
	return t.FullName()
}

// ParseTable splits "schema.table". A name without a dot gets defaultSchema.
func ParseTable(fullName, defaultSchema string) Table {
	for i := 0; i < len(fullName); i++ {
		if fullName[i] == '.' {
			return Table{Schema: fullName[:i], Name: fullName[i+1:]}
		}
	}
	return Table{Schema: defaultSchema, Name: fullName}
}

// ListUserTables retrieves the user tables of db ordered by schema then table name.
// System and engine-shipped tables are not returned.
func ListUserTables(ctx context.Context, db *gorm.DB) ([]Table, error) {
	dialect, err := DialectFor(db)
	if err != nil {
		return nil, err
	}

	rows, err := db.WithContext(ctx).Raw(dialect.ListTablesQuery()).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.Schema, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan table row: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// ListColumns retrieves the column names of t in ordinal position order.
// An unknown table yields an empty list and no error.
func ListColumns(ctx context.Context, db *gorm.DB, t Table) ([]string, error) {
	dialect, err := DialectFor(db)
	if err != nil {
		return nil, err
	}

	query, args := dialect.ListColumnsQuery(t)
	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", t, err)
	}
	defer rows.Close()

	columns := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column of table %s: %w", t, err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", t, err)
	}
	return columns, nil
}
