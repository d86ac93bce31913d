// Package compare drives a comparison of two databases.
//
// An Engine enumerates the user tables of the new database, skips the ones
// matched by an exclusion filter.Set, fingerprints every remaining table on
// both sides into a fingerprint.Store and counts the old side rows whose
// fingerprint is absent from the new side. Tables are independent: a failure
// is recorded in that table's Result and the run carries on.
package compare
