package shared

import "sync/atomic"

// Cloner is implemented by snapshot types that need a deep copy before
// they can be modified by Update.
type Cloner[T any] interface {
	Clone() T
}

// snapshot is the immutable unit swapped by a Cell.
type snapshot[T any] struct {
	value   T
	version uint64
}

// Cell is a multi-reader RCU container for one immutable snapshot.
// The zero value is not usable; create cells with New.
type Cell[T any] struct {
	current atomic.Pointer[snapshot[T]]
}

// New creates a cell holding initial as version 1.
func New[T any](initial T) *Cell[T] {
	c := &Cell[T]{}
	c.current.Store(&snapshot[T]{value: initial, version: 1})
	return c
}

// Load returns a guard on the snapshot current at call time.
// It never blocks and never allocates.
func (c *Cell[T]) Load() Guard[T] {
	return Guard[T]{snap: c.current.Load()}
}

// Version returns the version of the current snapshot.
func (c *Cell[T]) Version() uint64 {
	return c.current.Load().version
}

// Store installs value as the new snapshot.
// Guards obtained earlier keep observing the snapshot they pinned.
func (c *Cell[T]) Store(value T) {
	c.Swap(value)
}

// Swap installs value and returns a guard on the snapshot it replaced.
func (c *Cell[T]) Swap(value T) Guard[T] {
	next := &snapshot[T]{value: value}
	for {
		old := c.current.Load()
		next.version = old.version + 1
		if c.current.CompareAndSwap(old, next) {
			return Guard[T]{snap: old}
		}
	}
}

// Update applies f to a copy of the current snapshot and installs the
// result if no other writer published in between. On contention the copy
// is rebuilt from the latest snapshot and f runs again, so f must not
// have side effects outside the value it receives.
func (c *Cell[T]) Update(f func(*T)) {
	for {
		old := c.current.Load()
		value := clone(old.value)
		f(&value)
		if c.current.CompareAndSwap(old, &snapshot[T]{value: value, version: old.version + 1}) {
			return
		}
	}
}

func clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Guard pins one snapshot for as long as it is held.
// A Guard is a point-in-time view; it never follows later stores.
type Guard[T any] struct {
	snap *snapshot[T]
}

// Value returns a copy of the pinned snapshot.
func (g Guard[T]) Value() T {
	return g.snap.value
}

// Ptr returns the pinned snapshot without copying.
// Callers must treat the pointee as read-only.
func (g Guard[T]) Ptr() *T {
	return &g.snap.value
}

// Version returns the publish counter of the pinned snapshot.
func (g Guard[T]) Version() uint64 {
	return g.snap.version
}
