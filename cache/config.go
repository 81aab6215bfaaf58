package cache

import (
	"time"

	"github.com/goliatone/go-student-records/internal/cacheinfra"
)

// Config exposes the cache tuning knobs to consumers of the package.
type Config struct {
	// Capacity is the maximum number of cached entries.
	Capacity int

	// NumShards controls how many shards back the cache for concurrent
	// access.
	NumShards int

	// TTL is how long an entry is served before it is considered stale
	// regardless of use.
	TTL time.Duration

	// EvictionPercentage is the share of entries evicted when the cache
	// hits capacity, between 1 and 100.
	EvictionPercentage int

	// MissingRecordStorage remembers keys whose fetch found nothing, so
	// repeated lookups for absent records skip the backend.
	MissingRecordStorage bool

	// EvictionInterval overrides how often expired entries are collected.
	// Zero keeps the backend default.
	EvictionInterval time.Duration
}

// DefaultConfig returns the defaults the record store ships with: a five
// minute TTL and room for every distinct query shape a deployment
// realistically issues.
func DefaultConfig() Config {
	return fromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewCacheService constructs the default sturdyc-backed cache service.
func NewCacheService(cfg Config) (CacheService, error) {
	return cacheinfra.NewSturdycService(cfg.toInternal())
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:             c.Capacity,
		NumShards:            c.NumShards,
		TTL:                  c.TTL,
		EvictionPercentage:   c.EvictionPercentage,
		MissingRecordStorage: c.MissingRecordStorage,
		EvictionInterval:     c.EvictionInterval,
	}
}

func fromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:             cfg.Capacity,
		NumShards:            cfg.NumShards,
		TTL:                  cfg.TTL,
		EvictionPercentage:   cfg.EvictionPercentage,
		MissingRecordStorage: cfg.MissingRecordStorage,
		EvictionInterval:     cfg.EvictionInterval,
	}
}
