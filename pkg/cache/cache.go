// Package cache stores rendered chart artifacts.
//
// # Overview
//
// A chart render is a pure function of the spec and the measurement, so
// its output can be cached under a key derived from both. The pipeline
// looks up every requested format before computing anything and skips the
// layout entirely when all of them are cached.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: shared cache with a TTL index
//
// # Keys
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the key options, and
// [ScopedKeyer] prefixes every key so several tenants can share a backend.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the lifetime of rendered outputs (SVG, PNG, ...).
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiration.
//
// Get reports a miss with ok == false and a nil error. Implementations are
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
