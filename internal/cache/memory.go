package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"
)

type memoryEntry struct {
	key       Key
	results   []models.RankedResult
	createdAt time.Time
	hitCount  int64
}

// MemoryCache is a capacity-bounded LRU cache with a TTL. A capacity of 0
// disables the bound; a TTL of 0 disables expiry.
type MemoryCache struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	order     *list.List // front = most recently used
	index     map[Key]*list.Element
	hits      int64
	misses    int64
	evictions int64
	now       func() time.Time
}

func NewMemoryCache(capacity int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		index:    make(map[Key]*list.Element),
		now:      time.Now,
	}
}

// Get returns the cached result set for key and bumps its hit count, or
// reports a miss. Expired entries are dropped on access.
func (c *MemoryCache) Get(_ context.Context, key Key) ([]models.RankedResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		c.misses++
		return nil, false
	}
	entry := elem.Value.(*memoryEntry)
	if c.ttl > 0 && c.now().Sub(entry.createdAt) > c.ttl {
		c.order.Remove(elem)
		delete(c.index, key)
		c.misses++
		return nil, false
	}

	entry.hitCount++
	c.hits++
	c.order.MoveToFront(elem)
	return entry.results, true
}

// Put stores a new result set under key with a zero hit count, evicting
// the least recently used entry when over capacity.
func (c *MemoryCache) Put(_ context.Context, key Key, results []models.RankedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.results = results
		entry.createdAt = c.now()
		entry.hitCount = 0
		c.order.MoveToFront(elem)
		return
	}

	c.index[key] = c.order.PushFront(&memoryEntry{
		key:       key,
		results:   results,
		createdAt: c.now(),
	})

	if c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.index, oldest.Value.(*memoryEntry).key)
			c.evictions++
		}
	}
}

// HitCount returns the per-entry hit counter, or 0 if the key is absent.
func (c *MemoryCache) HitCount(key Key) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.index[key]; ok {
		return elem.Value.(*memoryEntry).hitCount
	}
	return 0
}

func (c *MemoryCache) Stats(_ context.Context) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:   c.order.Len(),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}
