// Package cache provides an in-memory sharded LRU cache with TTL expiry.
package cache

// Cache is a keyed store of values of type V.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics reports cache effectiveness.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics[V any] interface {
	Cache[V]
	Metrics() Metrics
}

var _ CacheWithMetrics[int] = (*Sharded[int])(nil)
