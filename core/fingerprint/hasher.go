package fingerprint

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint is the base64 encoded digest of one row's canonical text.
type Fingerprint string

// Hasher turns the normalized text of a row into a Fingerprint.
type Hasher interface {
	Hash(normalizedRowText string) Fingerprint
}

// SHA256Hasher produces standard base64 SHA-256 digests, the same format the
// server side hash expressions emit.
type SHA256Hasher struct{}

// Hash implements Hasher.
func (SHA256Hasher) Hash(normalizedRowText string) Fingerprint {
	sum := sha256.Sum256([]byte(normalizedRowText))
	return Fingerprint(base64.StdEncoding.EncodeToString(sum[:]))
}
