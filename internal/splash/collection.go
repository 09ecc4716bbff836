package splash

import "iter"

// Collection is an insertion-ordered list of splashes with a hard cap.
// Once full, each insert evicts the oldest splash first.
type Collection struct {
	items []*Splash
	limit int
}

// NewCollection returns an empty collection holding at most limit splashes.
func NewCollection(limit int) *Collection {
	if limit < 1 {
		limit = 1
	}
	return &Collection{
		items: make([]*Splash, 0, limit),
		limit: limit,
	}
}

// Insert appends s, evicting and returning the oldest splash if the
// collection was already full.
func (c *Collection) Insert(s *Splash) (evicted *Splash) {
	if len(c.items) >= c.limit {
		evicted = c.items[0]
		copy(c.items, c.items[1:])
		c.items[len(c.items)-1] = nil
		c.items = c.items[:len(c.items)-1]
	}
	c.items = append(c.items, s)
	return evicted
}

// Reset drops every splash and returns how many there were.
func (c *Collection) Reset() int {
	n := len(c.items)
	clear(c.items)
	c.items = c.items[:0]
	return n
}

func (c *Collection) Len() int { return len(c.items) }

func (c *Collection) Cap() int { return c.limit }

// At returns the i-th oldest splash.
func (c *Collection) At(i int) *Splash { return c.items[i] }

// Index returns the live position of s, or -1.
func (c *Collection) Index(s *Splash) int {
	for i, it := range c.items {
		if it == s {
			return i
		}
	}
	return -1
}

// All iterates in insertion order.
func (c *Collection) All() iter.Seq2[int, *Splash] {
	return func(yield func(int, *Splash) bool) {
		for i, s := range c.items {
			if !yield(i, s) {
				return
			}
		}
	}
}

// view exposes the backing slice to the physics and render steps; callers
// must not retain it across a mutation.
func (c *Collection) view() []*Splash { return c.items }
