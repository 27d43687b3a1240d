package power

import (
	"context"
	"fmt"
	"sync"

	"github.com/agorai/climate-profiler/internal/domain"
	"github.com/agorai/climate-profiler/internal/observability"
)

// CachedFetcher wraps a RecordFetcher with an in-memory LRU cache keyed by
// point and year range. In service mode the same registry is fetched on every
// interval; the cache keeps repeat runs from hammering the upstream for data
// that cannot have changed within the requested historical range.
type CachedFetcher struct {
	inner   domain.RecordFetcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a fetcher.
func NewCachedFetcher(inner domain.RecordFetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedFetcher) FetchRecord(ctx context.Context, point domain.Point, startYear, endYear int) (domain.RawClimateRecord, error) {
	key := fmt.Sprintf("%.4f,%.4f|%d-%d", point.Lat, point.Lon, startYear, endYear)
	if record, ok := c.cache.get(key); ok {
		c.metrics.CacheHits.Inc()
		return record, nil
	}
	record, err := c.inner.FetchRecord(ctx, point, startYear, endYear)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, record)
	return record, nil
}

// lruCache is a small thread-safe LRU cache for raw climate records.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key    string
	record domain.RawClimateRecord
	prev   *entry
	next   *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.RawClimateRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.record, true
}

func (c *lruCache) put(key string, record domain.RawClimateRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.record = record
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, record: record}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
