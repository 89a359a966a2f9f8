package document

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// DefaultRefTTL balances staleness against the N+1 fetch cost of
// population-heavy list views.
const DefaultRefTTL = 10 * time.Second

// RefCache is a short-lived cache of resolved foreign documents keyed
// by id. Implementations must be safe for concurrent use; last write
// wins on overlapping puts.
type RefCache interface {
	Get(ctx context.Context, id string, now time.Time) (map[string]any, bool)
	Put(ctx context.Context, id string, doc map[string]any, now time.Time)
}

type refEntry struct {
	doc map[string]any
	at  time.Time
}

// MemoryRefCache is the in-process RefCache. Expiry is checked on
// read; a sweep bounds growth once the map exceeds maxEntries.
type MemoryRefCache struct {
	mu         sync.Mutex
	entries    map[string]refEntry
	ttl        time.Duration
	maxEntries int
}

// NewMemoryRefCache creates a cache with the given TTL, or
// DefaultRefTTL when ttl is not positive.
func NewMemoryRefCache(ttl time.Duration) *MemoryRefCache {
	if ttl <= 0 {
		ttl = DefaultRefTTL
	}
	return &MemoryRefCache{
		entries:    make(map[string]refEntry),
		ttl:        ttl,
		maxEntries: 4096,
	}
}

// Get returns the cached snapshot when it is younger than the TTL.
func (c *MemoryRefCache) Get(_ context.Context, id string, now time.Time) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if now.Sub(e.at) >= c.ttl {
		delete(c.entries, id)
		return nil, false
	}
	return e.doc, true
}

// Put overwrites the snapshot and resets its timestamp.
func (c *MemoryRefCache) Put(_ context.Context, id string, doc map[string]any, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.sweep(now)
	}
	c.entries[id] = refEntry{doc: doc, at: now}
}

// sweep drops expired entries, and falls back to clearing everything
// when expiry alone cannot bound the map. Caller holds the lock.
func (c *MemoryRefCache) sweep(now time.Time) {
	for id, e := range c.entries {
		if now.Sub(e.at) >= c.ttl {
			delete(c.entries, id)
		}
	}
	if len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]refEntry)
	}
}

// redisStore is the slice of the redis adapter the cache needs.
type redisStore interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error
}

// RedisRefCache shares resolved references across processes using
// native key expiry. Failures degrade to cache misses.
type RedisRefCache struct {
	store  redisStore
	ttl    time.Duration
	prefix string
}

// NewRedisRefCache creates a redis-backed RefCache.
func NewRedisRefCache(store redisStore, ttl time.Duration) *RedisRefCache {
	if ttl <= 0 {
		ttl = DefaultRefTTL
	}
	return &RedisRefCache{store: store, ttl: ttl, prefix: "ref:"}
}

func (c *RedisRefCache) Get(ctx context.Context, id string, _ time.Time) (map[string]any, bool) {
	raw, err := c.store.Get(ctx, c.prefix+id)
	if err != nil {
		return nil, false
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false
	}
	return doc, true
}

func (c *RedisRefCache) Put(ctx context.Context, id string, doc map[string]any, _ time.Time) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	_ = c.store.SetWithTTL(ctx, c.prefix+id, string(raw), c.ttl)
}
