// Package fingerprint turns table rows into fixed size digests and keeps the
// resulting streams outside process memory.
//
// # Fingerprints
//
// A Fingerprint is the base64 SHA-256 digest of a row's column values rendered
// as text, NULL rendered as the empty string, concatenated in ordinal column
// order. Two strategies produce it:
//
//   - ServerFingerprinter asks the database to compute the digest (MySQL SHA2,
//     PostgreSQL sha256) so only digests cross the wire.
//   - ClientFingerprinter selects the raw values and hashes them with a Hasher.
//
// Both sides of one comparison must use the same strategy; NewFingerprinter
// picks it once per run.
//
// # Store
//
// Store.Capture writes a fingerprint stream to a Backend one digest per line.
// Store.Set loads one artifact as a membership set and Store.Lines replays one
// without loading it. Store.Dispose removes artifacts on a best effort basis.
// Artifacts live on local disk (DiskBackend) or in an S3/MinIO bucket
// (ObjectBackend).
package fingerprint
