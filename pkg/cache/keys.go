package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ElevationKey builds the cache key for a rendered elevation from the
// assembly's content hash and the render parameters. Two renders share
// a key exactly when they would produce identical SVG bytes.
func ElevationKey(assemblyHash string, pxPerMM float64, showDimensions bool) string {
	return fmt.Sprintf("elevation:%s:%g:%t", assemblyHash, pxPerMM, showDimensions)
}
