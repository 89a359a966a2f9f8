package document

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/campusbridge/campusbridge/pkg/store"
)

// MemoryClient is an in-process Client used for development and as the
// test fixture. Documents are deep-copied on the way in and out so
// callers never share map state with the store.
type MemoryClient struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewMemoryClient creates an empty in-memory store.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{collections: make(map[string]map[string]map[string]any)}
}

// HealthCheck always succeeds.
func (c *MemoryClient) HealthCheck(_ context.Context) error { return nil }

// Close is a no-op.
func (c *MemoryClient) Close() error { return nil }

func (c *MemoryClient) Find(_ context.Context, collection string, filter Filter) ([]map[string]any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []map[string]any
	for _, doc := range c.collections[collection] {
		if matchesFilter(doc, filter) {
			out = append(out, copyDoc(doc))
		}
	}
	return out, nil
}

func (c *MemoryClient) FindByID(_ context.Context, collection, id string) (map[string]any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.collections[collection][id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyDoc(doc), nil
}

func (c *MemoryClient) FindByIDs(_ context.Context, collection string, ids []string) ([]map[string]any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		if doc, ok := c.collections[collection][id]; ok {
			out = append(out, copyDoc(doc))
		}
	}
	return out, nil
}

func (c *MemoryClient) Count(_ context.Context, collection string, filter Filter) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int64
	for _, doc := range c.collections[collection] {
		if matchesFilter(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (c *MemoryClient) Insert(_ context.Context, collection string, doc map[string]any) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := copyDoc(doc)
	id, _ := stored["id"].(string)
	if id == "" {
		id = uuid.New().String()
		stored["id"] = id
	}

	if c.collections[collection] == nil {
		c.collections[collection] = make(map[string]map[string]any)
	}
	c.collections[collection][id] = stored
	return id, nil
}

func (c *MemoryClient) Replace(_ context.Context, collection, id string, doc map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := copyDoc(doc)
	stored["id"] = id
	if c.collections[collection] == nil {
		c.collections[collection] = make(map[string]map[string]any)
	}
	c.collections[collection][id] = stored
	return nil
}

func (c *MemoryClient) Delete(_ context.Context, collection, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.collections[collection][id]; !ok {
		return store.ErrNotFound
	}
	delete(c.collections[collection], id)
	return nil
}

func matchesFilter(doc map[string]any, filter Filter) bool {
	for field, want := range filter {
		if !looselyEqual(doc[field], want) {
			return false
		}
	}
	return true
}

// looselyEqual compares through JSON so typed values (e.g. int vs
// float64 after a round trip) match the way a real backend would.
func looselyEqual(a, b any) bool {
	if a == b {
		return true
	}
	ra, err := json.Marshal(a)
	if err != nil {
		return false
	}
	rb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ra) == string(rb)
}

func copyDoc(doc map[string]any) map[string]any {
	raw, err := json.Marshal(doc)
	if err != nil {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{}
	}
	return out
}
