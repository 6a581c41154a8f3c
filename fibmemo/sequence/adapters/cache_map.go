package adapters

import (
	"sort"

	ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"
)

// MapCache is a map-backed memoization table.
// It never evicts, so every stored index stays valid for the cache lifetime.
type MapCache[V any] struct {
	items map[int]V
}

// NewMapCache creates an empty cache.
func NewMapCache[V any]() *MapCache[V] {
	return &MapCache[V]{
		items: make(map[int]V),
	}
}

// Get retrieves the value stored for index n.
func (c *MapCache[V]) Get(n int) (V, bool) {
	v, ok := c.items[n]
	return v, ok
}

// Set stores value under index n, replacing any previous entry.
func (c *MapCache[V]) Set(n int, value V) {
	c.items[n] = value
}

// Len returns the number of stored indices.
func (c *MapCache[V]) Len() int {
	return len(c.items)
}

// Seed stores a batch of entries. Intended for pre-warming in tests and tools.
func (c *MapCache[V]) Seed(entries map[int]V) {
	for n, v := range entries {
		c.items[n] = v
	}
}

// Indices returns the stored indices in ascending order.
func (c *MapCache[V]) Indices() []int {
	out := make([]int, 0, len(c.items))
	for n := range c.items {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Ensure MapCache implements the Cache interface.
var _ ports.Cache[uint64] = (*MapCache[uint64])(nil)
