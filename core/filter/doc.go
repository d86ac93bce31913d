// Package filter decides which tables are left out of a comparison.
//
// Exclusion entries use SQL LIKE wildcards and are matched against the
// "schema.table" name of each table:
//
//	set, err := filter.CompileAll([]string{"staging.%", "%.tmp_%"})
//	set.IsExcluded("staging.orders") // true
//	set.IsExcluded("dbo.orders")     // false
package filter
