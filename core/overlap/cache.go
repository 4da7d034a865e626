// core/overlap/cache.go
package overlap

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// DefaultCacheSize bounds an LPSCache created with a non-positive capacity.
const DefaultCacheSize = 200_000

// LPSCache memoizes prefix-function tables keyed by the exact pattern. It is
// safe for concurrent use. Two goroutines missing on the same pattern may both
// compute the table; the tables are identical so either one is kept.
//
// Returned tables are shared and must not be modified.
type LPSCache struct {
	mu  sync.Mutex
	cap int
	ll  *list.List
	m   map[string]*list.Element

	hits   atomic.Uint64
	misses atomic.Uint64
}

type lpsEntry struct {
	pattern string
	lps     []int
}

// CacheStats is a point-in-time view of cache activity.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

func NewLPSCache(capacity int) *LPSCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &LPSCache{cap: capacity, ll: list.New(), m: make(map[string]*list.Element)}
}

// Get returns the LPS table of pattern, computing and storing it on a miss.
func (c *LPSCache) Get(pattern string) []int {
	c.mu.Lock()
	if e, ok := c.m[pattern]; ok {
		c.ll.MoveToFront(e)
		lps := e.Value.(*lpsEntry).lps
		c.mu.Unlock()
		c.hits.Add(1)
		return lps
	}
	c.mu.Unlock()

	c.misses.Add(1)
	lps := PrefixFunction(pattern)
	c.put(pattern, lps)
	return lps
}

func (c *LPSCache) put(pattern string, lps []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[pattern]; ok {
		c.ll.MoveToFront(e)
		return
	}
	c.m[pattern] = c.ll.PushFront(&lpsEntry{pattern: pattern, lps: lps})
	if c.ll.Len() > c.cap {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.m, tail.Value.(*lpsEntry).pattern)
		}
	}
}

// Len reports the number of cached patterns.
func (c *LPSCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *LPSCache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: c.Len()}
}
