// Package counter tallies comparable keys and ranks them by frequency.
package counter

import "sort"

type Pair[K comparable] struct {
	Key   K
	Count int
}

// Counter remembers the order in which keys were first added, and ranking
// falls back to that order when counts tie.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

func New[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

func (c *Counter[K]) Add(key K) {
	c.AddN(key, 1)
}

func (c *Counter[K]) AddN(key K, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Len is the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

func (c *Counter[K]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Keys returns keys in first-seen order.
func (c *Counter[K]) Keys() []K {
	return append([]K(nil), c.order...)
}

// MostCommon returns the n most frequent keys. n <= 0 returns all of them.
func (c *Counter[K]) MostCommon(n int) []Pair[K] {
	pairs := make([]Pair[K], len(c.order))
	for i, k := range c.order {
		pairs[i] = Pair[K]{Key: k, Count: c.counts[k]}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Count > pairs[j].Count
	})
	if n > 0 && n < len(pairs) {
		pairs = pairs[:n]
	}
	return pairs
}

// Map copies the counts into a plain map.
func (c *Counter[K]) Map() map[K]int {
	m := make(map[K]int, len(c.counts))
	for k, v := range c.counts {
		m[k] = v
	}
	return m
}
