// Package utils provides value conversion helpers shared by the comparison packages.
// ToCanonicalString defines the text form of a column value when rows are hashed
// in process rather than by the database.
package utils
