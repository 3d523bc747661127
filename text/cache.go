package text

import "sort"

// lru is a least-recently-used map with a soft size limit. When the map
// grows past the limit the oldest quarter of entries is evicted. A limit
// of 0 means unlimited.
type lru[K comparable, V any] struct {
	entries map[K]*lruEntry[V]
	limit   int
	tick    int64
}

type lruEntry[V any] struct {
	value V
	atime int64
}

func newLRU[K comparable, V any](limit int) *lru[K, V] {
	return &lru[K, V]{entries: make(map[K]*lruEntry[V]), limit: limit}
}

func (c *lru[K, V]) get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	return e.value, true
}

func (c *lru[K, V]) set(key K, value V) {
	c.tick++
	c.entries[key] = &lruEntry[V]{value: value, atime: c.tick}
	if c.limit > 0 && len(c.entries) > c.limit {
		c.evict()
	}
}

func (c *lru[K, V]) len() int { return len(c.entries) }

func (c *lru[K, V]) clear() {
	c.entries = make(map[K]*lruEntry[V])
	c.tick = 0
}

// evict drops entries oldest first until 3/4 of the limit remain.
func (c *lru[K, V]) evict() {
	target := max(c.limit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}
	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.atime})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].atime < all[j].atime })
	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
}

// shapeKey identifies one shaped string in a Font's shaping cache.
type shapeKey struct {
	text string
	size float64
}

// shapeCacheLimit bounds the number of shaped strings kept per Font.
const shapeCacheLimit = 256
