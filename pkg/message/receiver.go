package message

import (
	"iter"
	"sync/atomic"
)

// Receiver is the draining half of a Channel.
type Receiver[T any] struct {
	q      *queue[T]
	closed atomic.Bool
}

// Drain removes and returns every message queued at call time, oldest
// first. Messages enqueued while draining are left for the next call.
// It returns nil when nothing is queued.
func (r *Receiver[T]) Drain() []T {
	return r.DrainLimit(r.q.pending())
}

// DrainLimit removes and returns at most n messages, oldest first.
func (r *Receiver[T]) DrainLimit(n int) []T {
	if r.closed.Load() || n <= 0 {
		return nil
	}
	if p := r.q.pending(); n > p {
		n = p
	}
	if n == 0 {
		return nil
	}

	out := make([]T, 0, n)
	for len(out) < n {
		select {
		case msg := <-r.q.items:
			out = append(out, msg)
		default:
			// Another receiver took the rest.
			return out
		}
	}
	return out
}

// TryRecv removes and returns one message if any is queued.
func (r *Receiver[T]) TryRecv() (T, bool) {
	var zero T
	if r.closed.Load() {
		return zero, false
	}

	select {
	case msg := <-r.q.items:
		return msg, true
	default:
		return zero, false
	}
}

// All returns an iterator that receives queued messages until the queue
// is empty. Every yielded message is removed from the channel.
func (r *Receiver[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			msg, ok := r.TryRecv()
			if !ok || !yield(msg) {
				return
			}
		}
	}
}

// Pending returns the number of queued messages.
func (r *Receiver[T]) Pending() int { return r.q.pending() }

// Capacity returns the fixed capacity of the channel.
func (r *Receiver[T]) Capacity() int { return r.q.capacity() }

// IsEmpty reports whether nothing is queued.
func (r *Receiver[T]) IsEmpty() bool { return r.q.pending() == 0 }

// IsFull reports whether the queue is at capacity.
func (r *Receiver[T]) IsFull() bool { return r.q.pending() == r.q.capacity() }

// IsDisconnected reports whether every sender is gone and nothing is
// left to receive.
func (r *Receiver[T]) IsDisconnected() bool {
	return r.closed.Load() || (r.q.senders.Load() == 0 && r.q.pending() == 0)
}

// Clone returns another handle on the same channel.
// Cloning a closed handle yields a closed handle.
func (r *Receiver[T]) Clone() *Receiver[T] {
	c := &Receiver[T]{q: r.q}
	if r.closed.Load() {
		c.closed.Store(true)
		return c
	}
	r.q.receivers.Add(1)
	return c
}

// Close releases this handle. Once every receiver is closed, senders
// fail with ErrDisconnected.
func (r *Receiver[T]) Close() {
	if r.closed.CompareAndSwap(false, true) {
		r.q.receivers.Add(-1)
	}
}
