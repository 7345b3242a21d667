package details

import (
	"container/list"
	"time"

	"github.com/libertycoverage/jobdeck/internal/api"
)

// cacheEntry is one cached detail record plus its fetch time.
type cacheEntry struct {
	id        int
	details   *api.JobDetails
	fetchedAt time.Time
}

// lruCache is a bounded most-recently-used cache keyed by job id.
// Not goroutine-safe; the owning Service serializes access.
type lruCache struct {
	capacity int
	order    *list.List // front = most recently used; values are *cacheEntry
	index    map[int]*list.Element
}

func newLRUCache(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[int]*list.Element, capacity),
	}
}

// get returns the entry for id and promotes it, or nil on miss.
func (c *lruCache) get(id int) *cacheEntry {
	el, ok := c.index[id]
	if !ok {
		return nil
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry)
}

// put inserts or refreshes an entry, evicting the least recently used
// record when the cache is full.
func (c *lruCache) put(id int, d *api.JobDetails, fetchedAt time.Time) {
	if el, ok := c.index[id]; ok {
		el.Value = &cacheEntry{id: id, details: d, fetchedAt: fetchedAt}
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.index, oldest.Value.(*cacheEntry).id)
		}
	}

	c.index[id] = c.order.PushFront(&cacheEntry{id: id, details: d, fetchedAt: fetchedAt})
}

// len returns the number of cached entries.
func (c *lruCache) len() int {
	return c.order.Len()
}
