// Package cache provides pluggable byte-level caching with TTL for
// server deployments: rendered category graphs and table-of-contents
// snapshots are expensive to compute and are reused across requests.
//
// Two backends are provided: [FileCache] for single-host setups and
// [RedisCache] for shared deployments. [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with an optional
// time-to-live. A TTL of 0 means the entry never expires.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was found; expired entries count as missing.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderKeyOpts captures the parameters that make two renders of the
// same graph distinct.
type RenderKeyOpts struct {
	Root     string `json:"root"`
	Format   string `json:"format"`
	Counters bool   `json:"counters"`
}

// Keyer generates cache keys for the different artifact types.
type Keyer interface {
	// ListingKey identifies one generation of a site listing.
	ListingKey(endpoint, listing string, namespace int) string

	// RenderKey identifies a rendered artifact derived from the graph
	// identified by graphHash.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// DefaultKeyer generates hash-based keys with stable prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ListingKey generates a key for a cached site listing.
func (k *DefaultKeyer) ListingKey(endpoint, listing string, namespace int) string {
	return hashKey("listing", endpoint, listing, namespace)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}
