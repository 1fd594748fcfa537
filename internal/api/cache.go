package api

import (
	"os"
	"strconv"
	"sync"

	"github.com/claritygate/claritygate/pkg/assess"
)

// ResultCache is a thread-safe LRU cache for loaded evaluation results.
// Evaluations are immutable once stored, so cached entries never go stale.
type ResultCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	result *assess.Result
}

// NewResultCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 50.
func NewResultCache(maxSize int) *ResultCache {
	if maxSize <= 0 {
		maxSize = 50
	}
	return &ResultCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// NewResultCacheFromEnv creates a cache with size from RESULT_CACHE_SIZE env var.
func NewResultCacheFromEnv() *ResultCache {
	size := 50
	if v := os.Getenv("RESULT_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewResultCache(size)
}

// Get retrieves a result from the cache, or nil if not found.
func (c *ResultCache) Get(evaluationID string) *assess.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[evaluationID]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(evaluationID)
	return entry.result
}

// Put adds a result to the cache, evicting the oldest if full.
func (c *ResultCache) Put(evaluationID string, result *assess.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[evaluationID]; ok {
		c.entries[evaluationID] = &cacheEntry{result: result}
		c.moveToEnd(evaluationID)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[evaluationID] = &cacheEntry{result: result}
	c.order = append(c.order, evaluationID)
}

func (c *ResultCache) moveToEnd(id string) {
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, id)
			return
		}
	}
}
