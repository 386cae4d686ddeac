package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 digest of the stable serialization of
// v. Identical canonical snapshots always produce identical fingerprints.
func Hash(v any) string {
	sum := sha256.Sum256([]byte(StableStringify(v)))
	return hex.EncodeToString(sum[:])
}
