// Package comparison exposes database comparisons over HTTP.
//
// # Routes
//
//   - GET /compare runs a full comparison and returns the summary.
//   - GET /compare/last returns the summary of the most recent run.
//   - GET /compare/tables lists the tables and their exclusion status.
//   - GET /compare/:schema/:table compares a single table.
//
// Full runs are deduplicated: a request arriving while a run is in flight
// waits for that run instead of starting another one.
package comparison
