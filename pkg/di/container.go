// Package di wires the cache service, key serializer and store decorator
// together for applications that want one constructor instead of assembling
// the pieces themselves.
package di

import (
	"github.com/goliatone/go-student-records/cache"
	"github.com/goliatone/go-student-records/internal/cacheinfra"
	"github.com/goliatone/go-student-records/student"
	"github.com/goliatone/go-student-records/studentcache"
)

// Container holds singleton cache components and builds cached stores. The
// cache instance is owned by the container, not a process global, so its
// lifetime is explicit and testable.
type Container struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	config        cacheinfra.Config
}

// NewContainer builds a container from an explicit cache configuration.
func NewContainer(config cacheinfra.Config) (*Container, error) {
	cacheService, err := cacheinfra.NewSturdycService(config)
	if err != nil {
		return nil, err
	}
	return &Container{
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		config:        config,
	}, nil
}

// NewContainerWithDefaults builds a container with the shipped defaults
// (five minute TTL).
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cacheinfra.DefaultConfig())
}

// CacheService returns the singleton cache service.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the cache configuration.
func (c *Container) Config() cacheinfra.Config {
	return c.config
}

// NewCachedStore wraps base with the container's cache components.
func (c *Container) NewCachedStore(base student.Store, opts ...studentcache.Option) *studentcache.CachedStore {
	return studentcache.New(base, c.cacheService, c.keySerializer, opts...)
}
