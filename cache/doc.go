// Package cache provides the caching interfaces and key serialization used
// by the student record store decorator.
//
// CacheService is the read-through surface: GetOrFetch populates on miss,
// Delete drops one key, DeleteByPrefix drops a whole keyspace (how write
// paths wipe every cached list-query variant at once). KeySerializer turns
// a method name and its arguments into a stable key; the default
// implementation renders scalars directly and routes structs through
// encoding/json for deterministic output.
//
// The default CacheService is backed by sturdyc with a fixed TTL; construct
// it with NewCacheService and a Config.
package cache
