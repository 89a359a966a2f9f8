package document

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMemoryRefCacheTTL(t *testing.T) {
	ttl := 10 * time.Second
	cache := NewMemoryRefCache(ttl)
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := map[string]any{"id": "u1", "name": "User One"}

	cache.Put(context.Background(), "u1", doc, t0)

	if _, ok := cache.Get(context.Background(), "u1", t0.Add(ttl-time.Nanosecond)); !ok {
		t.Fatal("entry just under the TTL should be a hit")
	}
	if _, ok := cache.Get(context.Background(), "u1", t0.Add(ttl)); ok {
		t.Fatal("entry at exactly the TTL should be a miss")
	}
	// The expired read also evicts.
	if _, ok := cache.Get(context.Background(), "u1", t0); ok {
		t.Fatal("evicted entry should stay gone")
	}
}

func TestMemoryRefCachePutResetsAge(t *testing.T) {
	ttl := 10 * time.Second
	cache := NewMemoryRefCache(ttl)
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := map[string]any{"id": "u1"}

	cache.Put(context.Background(), "u1", doc, t0)
	cache.Put(context.Background(), "u1", doc, t0.Add(5*time.Second))

	if _, ok := cache.Get(context.Background(), "u1", t0.Add(12*time.Second)); !ok {
		t.Fatal("overwrite should reset the entry age")
	}
}

func TestMemoryRefCacheDefaultTTL(t *testing.T) {
	cache := NewMemoryRefCache(0)
	if cache.ttl != DefaultRefTTL {
		t.Fatalf("ttl = %v, want %v", cache.ttl, DefaultRefTTL)
	}
}

func TestMemoryRefCacheSweepBoundsGrowth(t *testing.T) {
	cache := NewMemoryRefCache(10 * time.Second)
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < cache.maxEntries; i++ {
		cache.Put(context.Background(), fmt.Sprintf("id-%d", i), map[string]any{}, t0)
	}
	// All entries are expired at the next put; the sweep drops them.
	cache.Put(context.Background(), "fresh", map[string]any{}, t0.Add(time.Minute))

	if len(cache.entries) > cache.maxEntries {
		t.Fatalf("cache grew to %d entries, want at most %d", len(cache.entries), cache.maxEntries)
	}
	if _, ok := cache.Get(context.Background(), "fresh", t0.Add(time.Minute)); !ok {
		t.Fatal("fresh entry should survive the sweep")
	}
}

// fakeRedis implements the redisStore slice backed by a map.
type fakeRedis struct {
	data map[string]string
	fail bool
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	if f.fail {
		return "", errors.New("connection refused")
	}
	v, ok := f.data[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (f *fakeRedis) SetWithTTL(_ context.Context, key string, value any, _ time.Duration) error {
	if f.fail {
		return errors.New("connection refused")
	}
	f.data[key] = value.(string)
	return nil
}

func TestRedisRefCacheRoundTrip(t *testing.T) {
	store := &fakeRedis{data: map[string]string{}}
	cache := NewRedisRefCache(store, 10*time.Second)
	now := time.Now()

	cache.Put(context.Background(), "u1", map[string]any{"id": "u1", "name": "User One"}, now)

	got, ok := cache.Get(context.Background(), "u1", now)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got["name"] != "User One" {
		t.Fatalf("got name %v, want User One", got["name"])
	}
}

func TestRedisRefCacheFailureIsMiss(t *testing.T) {
	store := &fakeRedis{data: map[string]string{}, fail: true}
	cache := NewRedisRefCache(store, 10*time.Second)
	now := time.Now()

	cache.Put(context.Background(), "u1", map[string]any{"id": "u1"}, now)
	if _, ok := cache.Get(context.Background(), "u1", now); ok {
		t.Fatal("backend failure should read as a miss")
	}
}
