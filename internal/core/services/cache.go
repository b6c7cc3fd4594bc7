package services

import (
	"container/list"
	"sync"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
)

// resultCache is a bounded FIFO cache of search result lists. Eviction
// removes the oldest inserted key, not the least recently used one; a hit
// does not refresh an entry's position.
type resultCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = oldest inserted key
	entries  map[string][]domain.SearchResult
}

func newResultCache(capacity int) *resultCache {
	if capacity <= 0 {
		capacity = 100
	}
	return &resultCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string][]domain.SearchResult, capacity),
	}
}

// Get returns a copy of the cached results for key, if present.
func (c *resultCache) Get(key string) ([]domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	results, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	out := make([]domain.SearchResult, len(results))
	copy(out, results)
	return out, true
}

// Put stores results under key, evicting the single oldest entry when the
// cache is full. Re-inserting an existing key overwrites its value without
// changing its age.
func (c *resultCache) Put(key string, results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if c.order.Len() >= c.capacity {
			oldest := c.order.Front()
			if oldest != nil {
				c.order.Remove(oldest)
				delete(c.entries, oldest.Value.(string))
			}
		}
		c.order.PushBack(key)
	}

	stored := make([]domain.SearchResult, len(results))
	copy(stored, results)
	c.entries[key] = stored
}

// Len returns the current number of cached entries.
func (c *resultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
