package studentcache

import (
	"context"
	"strings"

	"github.com/goliatone/go-student-records/cache"
	"github.com/goliatone/go-student-records/student"
)

// Interface assertion so the cached store stays a drop-in Store.
var _ student.Store = (*CachedStore)(nil)

// Method segments used in cache keys. Per-id and per-code reads get their
// own keyspaces distinct from list queries so write paths can invalidate
// them independently.
const (
	methodGetByID   = "GetByID"
	methodGetByCode = "GetByCode"
	methodList      = "List"
)

// CachedStore decorates a student.Store with read-through caching. Reads
// (Get, GetByCode, List) populate the cache; writes pass through to the
// base store and, only after the base call succeeds, invalidate the touched
// keys plus every cached list variant. Invalidation after commit means a
// racing reader can never repopulate the cache with pre-write data.
// Analytics is never cached and always reflects the current records.
type CachedStore struct {
	base      student.Store
	cache     cache.CacheService
	keys      cache.KeySerializer
	namespace string
}

// Option configures a CachedStore.
type Option func(*CachedStore)

// WithNamespace overrides the key namespace, snake_cased so keys stay safe
// for prefix matching and external cache backends.
func WithNamespace(name string) Option {
	return func(c *CachedStore) {
		if ns := toSnake(name); ns != "" {
			c.namespace = ns
		}
	}
}

// New wraps base with caching.
func New(base student.Store, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...Option) *CachedStore {
	c := &CachedStore{
		base:      base,
		cache:     cacheService,
		keys:      keySerializer,
		namespace: toSnake("StudentRecord"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get serves the record from the per-id cache entry, falling through to the
// base store on a miss or expired entry. The cached instance is shared, so
// every hit returns a copy.
func (c *CachedStore) Get(ctx context.Context, id int64) (*student.Record, error) {
	key := c.key(methodGetByID, id)
	rec, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*student.Record, error) {
		return c.base.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// GetByCode serves the record from the per-code cache entry.
func (c *CachedStore) GetByCode(ctx context.Context, code string) (*student.Record, error) {
	key := c.key(methodGetByCode, strings.ToUpper(strings.TrimSpace(code)))
	rec, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*student.Record, error) {
		return c.base.GetByCode(ctx, code)
	})
	if err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// List caches each distinct normalized parameter tuple under its own key,
// so equivalent queries share an entry regardless of how the caller spelled
// page defaults.
func (c *CachedStore) List(ctx context.Context, params student.ListParams) (*student.ListResult, error) {
	p := params.Normalized()
	key := c.key(methodList, p)
	res, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*student.ListResult, error) {
		return c.base.List(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return res.Clone(), nil
}

// Create passes through and wipes the list keyspace on success: a new
// record affects totals and page contents of every cached query shape.
func (c *CachedStore) Create(ctx context.Context, in student.CreateInput) (*student.Record, error) {
	rec, err := c.base.Create(ctx, in)
	if err == nil {
		c.invalidateLists(ctx)
	}
	return rec, err
}

// CreateMany passes through; any created record invalidates the list
// keyspace, even when parts of the batch were rejected.
func (c *CachedStore) CreateMany(ctx context.Context, ins []student.CreateInput) (*student.BulkCreateResult, error) {
	res, err := c.base.CreateMany(ctx, ins)
	if res != nil && len(res.Created) > 0 {
		c.invalidateLists(ctx)
	}
	return res, err
}

// Update passes through, then drops the per-id entry, the whole per-code
// keyspace (the code may have changed, and the old code's entry must go
// too), and all list variants.
func (c *CachedStore) Update(ctx context.Context, id int64, in student.UpdateInput) (*student.Record, error) {
	rec, err := c.base.Update(ctx, id, in)
	if err == nil {
		c.invalidateRecord(ctx, id)
	}
	return rec, err
}

// Delete passes through with the same invalidation as Update.
func (c *CachedStore) Delete(ctx context.Context, id int64) error {
	err := c.base.Delete(ctx, id)
	if err == nil {
		c.invalidateRecord(ctx, id)
	}
	return err
}

// Analytics always hits the base store.
func (c *CachedStore) Analytics(ctx context.Context) (*student.Analytics, error) {
	return c.base.Analytics(ctx)
}

func (c *CachedStore) key(method string, args ...any) string {
	return c.namespace + cache.KeySeparator + c.keys.SerializeKey(method, args...)
}

func (c *CachedStore) prefix(method string) string {
	return c.namespace + cache.KeySeparator + method
}

// invalidateLists wipes every cached list-query variant; any write can
// change totals or page contents of any query shape.
func (c *CachedStore) invalidateLists(ctx context.Context) {
	_ = c.cache.DeleteByPrefix(ctx, c.prefix(methodList))
}

func (c *CachedStore) invalidateRecord(ctx context.Context, id int64) {
	_ = c.cache.Delete(ctx, c.key(methodGetByID, id))
	_ = c.cache.DeleteByPrefix(ctx, c.prefix(methodGetByCode))
	c.invalidateLists(ctx)
}
