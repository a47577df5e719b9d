package variant

import (
	"sync"

	domvar "github.com/kartgeo/crsdex/internal/domain/search/variant"
)

// BoundedCache is a fixed-capacity FIFO cache of generated variant
// lists. Safe for concurrent use.
type BoundedCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]domvar.Variant
	order    []string
}

// NewBoundedCache creates a cache holding at most capacity queries.
func NewBoundedCache(capacity int) *BoundedCache {
	if capacity < 1 {
		capacity = 1
	}
	return &BoundedCache{
		capacity: capacity,
		entries:  make(map[string][]domvar.Variant, capacity),
	}
}

// Get returns the cached variants for query, if present.
func (c *BoundedCache) Get(query string) ([]domvar.Variant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[query]
	return v, ok
}

// Put stores variants for query, evicting the oldest entry when full.
func (c *BoundedCache) Put(query string, variants []domvar.Variant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[query]; ok {
		c.entries[query] = variants
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[query] = variants
	c.order = append(c.order, query)
}

// Len returns the number of cached queries.
func (c *BoundedCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
