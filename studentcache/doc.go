// Package studentcache provides the cached decorator for student.Store.
//
// CachedStore is a drop-in Store: reads go through a TTL cache keyed by
// method and arguments, writes pass through to the base store and
// invalidate afterwards. Per-id and per-code lookups use exact keys; list
// queries share a key prefix that every successful write wipes entirely.
// The prefix wipe trades hit rate for a hard guarantee: a list issued after
// a write never reflects pre-write state for the affected record.
//
//	svc, _ := cache.NewCacheService(cache.DefaultConfig())
//	store := studentcache.New(base, svc, cache.NewDefaultKeySerializer())
//	rec, err := store.Get(ctx, 42)
package studentcache
