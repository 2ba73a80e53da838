package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/guttosm/tour-package-service/internal/metrics"
)

// Sharded spreads entries over power-of-two shards selected by key hash,
// so concurrent readers of different keys rarely share a lock.
type Sharded[V any] struct {
	shards    []*shard[V]
	shardMask uint64
}

// NewSharded creates a cache holding about capacity entries in total.
// numShards is rounded up to a power of two and defaults to 16.
func NewSharded[V any](capacity int, ttl time.Duration, numShards int) *Sharded[V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := max(capacity/n, 1)
	shards := make([]*shard[V], n)
	for i := range shards {
		shards[i] = newShard[V](perShard, ttl)
	}
	return &Sharded[V]{shards: shards, shardMask: uint64(n - 1)}
}

func (c *Sharded[V]) shardFor(key string) *shard[V] {
	return c.shards[xxhash.Sum64String(key)&c.shardMask]
}

func (c *Sharded[V]) Get(key string) (V, bool) {
	return c.shardFor(key).get(key)
}

func (c *Sharded[V]) Set(key string, value V) {
	c.shardFor(key).set(key, value)
}

func (c *Sharded[V]) Invalidate(key string) {
	c.shardFor(key).invalidate(key)
}

// Clear drops every entry in every shard.
func (c *Sharded[V]) Clear() {
	for _, s := range c.shards {
		s.clear()
	}
	metrics.RecordCacheOperation("clear", "success")
}

// Stop ends the background sweepers. The cache stays usable.
func (c *Sharded[V]) Stop() {
	for _, s := range c.shards {
		s.stop()
	}
}

// Metrics sums the per-shard counters.
func (c *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range c.shards {
		m := s.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// NumShards returns the shard count after rounding.
func (c *Sharded[V]) NumShards() int {
	return len(c.shards)
}

// shard is an LRU list plus index guarded by one mutex.
type shard[V any] struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*entry[V]
	head      *entry[V]
	tail      *entry[V]
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	now       func() time.Time
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

func newShard[V any](capacity int, ttl time.Duration) *shard[V] {
	s := &shard[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
	go s.sweep(time.Minute)
	return s
}

func (s *shard[V]) get(key string) (V, bool) {
	var zero V

	s.mu.Lock()
	e, ok := s.items[key]
	if !ok {
		s.mu.Unlock()
		s.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return zero, false
	}
	if s.now().After(e.expiresAt) {
		s.removeEntry(e)
		s.mu.Unlock()
		s.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return zero, false
	}
	s.moveToFront(e)
	value := e.value
	s.mu.Unlock()

	s.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return value, true
}

func (s *shard[V]) set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(s.ttl)
	if e, ok := s.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		s.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	s.items[key] = e
	s.pushFront(e)

	if len(s.items) > s.capacity {
		s.removeEntry(s.tail)
		s.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

func (s *shard[V]) invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.items[key]; ok {
		s.removeEntry(e)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

func (s *shard[V]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*entry[V], s.capacity)
	s.head, s.tail = nil, nil
	s.hits.Store(0)
	s.misses.Store(0)
	s.evictions.Store(0)
}

func (s *shard[V]) stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *shard[V]) metrics() Metrics {
	s.mu.Lock()
	size := len(s.items)
	s.mu.Unlock()

	return Metrics{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Evictions: s.evictions.Load(),
		Size:      size,
		Capacity:  s.capacity,
	}
}

// sweep drops expired entries once the shard is over 80% full.
func (s *shard[V]) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if len(s.items) > s.capacity*80/100 {
				s.removeExpired()
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

// removeExpired must be called with mu held.
func (s *shard[V]) removeExpired() {
	now := s.now()
	for _, e := range s.items {
		if now.After(e.expiresAt) {
			s.removeEntry(e)
		}
	}
}

func (s *shard[V]) removeEntry(e *entry[V]) {
	delete(s.items, e.key)
	s.unlink(e)
}

func (s *shard[V]) moveToFront(e *entry[V]) {
	if e == s.head {
		return
	}
	s.unlink(e)
	s.pushFront(e)
}

func (s *shard[V]) pushFront(e *entry[V]) {
	e.prev = nil
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *shard[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
