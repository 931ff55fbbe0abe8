// Package cache stores rendered topic pages, maps and overviews.
//
// A Cache is a plain byte store keyed by strings. Keys come from a Keyer,
// which hashes the tree content together with the render options so a
// changed tree or a different zoom never returns a stale artifact.
//
// Three backends are provided:
//   - NullCache never stores anything (caching disabled)
//   - FileCache keeps entries under a directory, for the CLI
//   - RedisCache shares entries between server replicas
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface used by the pipeline.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// Expired and corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default time-to-live per artifact kind. Keys already include the tree
// hash, so these only bound how long unused entries linger.
const (
	TTLPage     = 24 * time.Hour
	TTLMap      = 24 * time.Hour
	TTLOverview = 7 * 24 * time.Hour
)
