// Package student owns the student record collection: CRUD with typed
// failures, filtered/sorted/paginated listing, and aggregate analytics.
//
// Two Store implementations are provided. DBStore persists records through
// bun (SQLite or Postgres); MemStore keeps them in a concurrent map for
// tests and examples. Both share one listing pipeline so filter, sort and
// pagination semantics cannot drift between backends.
//
// Derived fields (full name, average score, grade tier) are pure functions
// on Record and are never persisted, which keeps them free of staleness
// invariants. Partial updates use pointer-optional fields so "not supplied"
// is distinguishable from "set to the zero value".
//
// For read-through caching of store operations, see the studentcache
// package.
package student
