package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/goccy/go-json"
)

// hashKey generates a cache key of the form prefix:sha256(parts).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash computes the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
