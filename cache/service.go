package cache

import (
	"context"
	"fmt"
)

// KeySerializer builds a cache key from a method name plus arbitrary args.
// Implementations must produce stable keys across calls for equal inputs.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}

// FetchFn is the signature CacheService expects when fetching from the
// source of truth on a cache miss.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the read-through operations the store decorator
// needs: fetch-or-populate, exact invalidation, and the prefix wipe the
// write paths use to drop every list-query variant at once.
type CacheService interface {
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// GetOrFetch is the type-safe wrapper over CacheService.GetOrFetch. The
// service interface is untyped because Go methods cannot carry their own
// type parameters.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T
	result, err := service.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("cache: unexpected value type %T for key %q", result, key)
	}
	return typed, nil
}
