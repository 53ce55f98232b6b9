package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// PreviewKey returns the cache key for a rendered preview of a DOT
// document in the given output format.
func PreviewKey(dot []byte, format string) string {
	return "preview:" + format + ":" + Hash(dot)
}
