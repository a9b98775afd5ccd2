// Package counters holds a small insertion-ordered counter used by the
// insights aggregations. Ties in Stats() keep the order in which keys
// were first seen, which keeps chart output deterministic.
package counters

import "sort"

type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

func New[K comparable]() *Counter[K] {
	return &Counter[K]{counts: map[K]int{}}
}

func (c *Counter[K]) Add(k K) {
	c.AddN(k, 1)
}

func (c *Counter[K]) AddN(k K, n int) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k] += n
}

// SeedKey registers a key with a zero count without bumping it.
func (c *Counter[K]) SeedKey(k K) {
	if _, ok := c.counts[k]; ok {
		return
	}
	c.counts[k] = 0
	c.order = append(c.order, k)
}

// AddExisting bumps a key only if it was seeded or counted before.
// Unknown keys are dropped on the floor.
func (c *Counter[K]) AddExisting(k K, n int) {
	if _, ok := c.counts[k]; !ok {
		return
	}
	c.counts[k] += n
}

func (c *Counter[K]) Get(k K) int {
	return c.counts[k]
}

func (c *Counter[K]) Len() int {
	return len(c.counts)
}

func (c *Counter[K]) Total() (total int) {
	for _, v := range c.counts {
		total += v
	}
	return total
}

type Pair[K comparable] struct {
	Key   K
	Count int
}

// Stats returns pairs sorted by count descending. Equal counts keep
// first-insertion order.
func (c *Counter[K]) Stats() []Pair[K] {
	stats := make([]Pair[K], 0, len(c.order))
	for _, k := range c.order {
		stats = append(stats, Pair[K]{k, c.counts[k]})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Ordered returns pairs in first-insertion order.
func (c *Counter[K]) Ordered() []Pair[K] {
	out := make([]Pair[K], 0, len(c.order))
	for _, k := range c.order {
		out = append(out, Pair[K]{k, c.counts[k]})
	}
	return out
}
