package engine

import (
	"gb.dev/gb/internal/cache"
	gberrors "gb.dev/gb/internal/errors"
)

// CounterStats reports how the counter answered its queries
type CounterStats struct {
	Trivial int // from == to, answered without the cache
	Hits    int
	Misses  int
}

// Counter computes commit range counts, backed by a cache store
type Counter struct {
	repo  RangeCounter
	store *cache.Store
	log   Logger
	stats CounterStats
}

// NewCounter creates a counter that consults and populates store
func NewCounter(repo RangeCounter, store *cache.Store, log Logger) *Counter {
	if store == nil {
		store = cache.NewStore()
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Counter{repo: repo, store: store, log: log}
}

// Count returns the number of commits reachable from to but not from from.
// Identical ids count zero without touching the cache. A traversal failure
// is returned as a *errors.RangeCountError and nothing is cached.
func (c *Counter) Count(from, to string) (int, error) {
	key := cache.NewRangeKey(from, to)
	if key.IsEmptyRange() {
		c.stats.Trivial++
		return 0, nil
	}

	if n, ok := c.store.Get(key); ok {
		c.stats.Hits++
		c.log.Debug("cache hit %s = %d", key, n)
		return n, nil
	}

	c.stats.Misses++
	n, err := c.repo.CountRange(from, to)
	if err != nil {
		return 0, gberrors.NewRangeCountError(from, to, err)
	}
	if n < 0 {
		return 0, gberrors.NewRangeCountError(from, to, nil)
	}

	c.store.Set(key, n)
	c.log.Debug("cache miss %s = %d", key, n)
	return n, nil
}

// Stats returns hit/miss counts since the counter was created
func (c *Counter) Stats() CounterStats {
	return c.stats
}
