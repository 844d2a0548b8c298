// Package uistate holds the small pieces of global UI state of the CRM demo:
// customer mode, persona, selected user and navigation visibility.
//
// State is owned by a Session which is passed explicitly or installed in a
// context with WithSession.
package uistate

import "sync"

// Cell holds one value and notifies subscribers of every change.
//
// Subscribers are called synchronously by Set, in subscription order, without
// the cell lock held so they may read the cell or set other cells.
type Cell[T any] struct {
	mu     sync.Mutex
	value  T
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// NewCell returns a cell holding v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores v then calls every subscriber with it.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	subs := make([]subscriber[T], len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	for _, s := range subs {
		s.fn(v)
	}
}

// Subscribe registers fn and returns a function removing it. The returned
// function is idempotent.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}
