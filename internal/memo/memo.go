// Package memo provides a concurrency-safe result cache for pure computations.
package memo

import (
	"github.com/puzpuzpuz/xsync/v4"
)

// Cache memoizes values by key. It is safe for concurrent use.
// Two goroutines racing on the same missing key may both compute it;
// the cached functions are pure, so either result is kept.
type Cache[K comparable, V any] struct {
	m *xsync.Map[K, V]
}

func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{m: xsync.NewMap[K, V]()}
}

// Load returns the cached value for key, if any.
func (c *Cache[K, V]) Load(key K) (V, bool) {
	return c.m.Load(key)
}

// Store caches value under key, replacing any previous value.
func (c *Cache[K, V]) Store(key K, value V) {
	c.m.Store(key, value)
}

// Compute returns the cached value for key, calling fn and caching its
// result on a miss.
func (c *Cache[K, V]) Compute(key K, fn func(K) V) V {
	if v, ok := c.m.Load(key); ok {
		return v
	}
	v := fn(key)
	c.m.Store(key, v)
	return v
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.m.Size()
}
