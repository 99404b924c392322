// Package idgen provides the process-wide session id allocator.
package idgen

import "sync/atomic"

// Generator issues strictly increasing, never-repeating identifiers and is
// safe under unbounded concurrent calls.
type Generator interface {
	// NextID atomically increments the counter and returns the new value.
	NextID() int64
	// PeekNextID returns the value the next NextID would produce if no
	// other allocation intervenes. Informational only: under concurrent
	// creation it can be stale by the time the caller uses it.
	PeekNextID() int64
}

// New returns a sequential generator whose first emitted id is 1.
func New() Generator { return &counter{} }

type counter struct {
	n atomic.Int64
}

func (c *counter) NextID() int64 { return c.n.Add(1) }

func (c *counter) PeekNextID() int64 { return c.n.Load() + 1 }
