package icons

import (
	"container/list"
	"context"
	"sync"

	"github.com/couchcryptid/weather-panel/internal/domain"
	"github.com/couchcryptid/weather-panel/internal/observability"
)

// CachedFetcher wraps an IconFetcher with an in-memory LRU cache keyed by URL.
// The forecast reuses a handful of icons, so most passes hit the cache.
type CachedFetcher struct {
	inner   domain.IconFetcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around an icon fetcher.
func NewCachedFetcher(inner domain.IconFetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedFetcher) FetchIcon(ctx context.Context, url string) ([]byte, error) {
	if data, ok := c.cache.get(url); ok {
		c.metrics.IconCache.WithLabelValues("hit").Inc()
		return data, nil
	}
	c.metrics.IconCache.WithLabelValues("miss").Inc()

	data, err := c.inner.FetchIcon(ctx, url)
	if err != nil {
		return nil, err
	}
	// Empty bodies are not cached so the next pass retries the download.
	if len(data) > 0 {
		c.cache.put(url, data)
	}
	return data, nil
}

// lruCache is a thread-safe LRU of encoded icons. The front of order is the
// most recently used entry.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List
	entries    map[string]*list.Element
}

type entry struct {
	key   string
	value []byte
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).value, true
}

func (c *lruCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*entry).value = value
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&entry{key: key, value: value})
	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
