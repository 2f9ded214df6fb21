package message

import "sync/atomic"

// Sender is the enqueueing half of a Channel.
type Sender[T any] struct {
	q      *queue[T]
	closed atomic.Bool
}

// Send enqueues msg without blocking.
func (s *Sender[T]) Send(msg T) error {
	if s.closed.Load() || s.q.receivers.Load() == 0 {
		return ErrDisconnected
	}

	select {
	case s.q.items <- msg:
		return nil
	default:
		return ErrFull
	}
}

// SendLossy enqueues msg or drops it. Both ErrFull and ErrDisconnected
// are swallowed; drops are counted and reported by Dropped.
func (s *Sender[T]) SendLossy(msg T) {
	if err := s.Send(msg); err != nil {
		s.q.dropped.Add(1)
	}
}

// Dropped returns how many lossy sends on this channel were discarded.
func (s *Sender[T]) Dropped() uint64 {
	return s.q.dropped.Load()
}

// Pending returns the number of queued messages.
func (s *Sender[T]) Pending() int { return s.q.pending() }

// Capacity returns the fixed capacity of the channel.
func (s *Sender[T]) Capacity() int { return s.q.capacity() }

// IsEmpty reports whether nothing is queued.
func (s *Sender[T]) IsEmpty() bool { return s.q.pending() == 0 }

// IsFull reports whether the queue is at capacity.
func (s *Sender[T]) IsFull() bool { return s.q.pending() == s.q.capacity() }

// IsDisconnected reports whether Send would fail with ErrDisconnected.
func (s *Sender[T]) IsDisconnected() bool {
	return s.closed.Load() || s.q.receivers.Load() == 0
}

// Clone returns another handle on the same channel.
// Cloning a closed handle yields a closed handle.
func (s *Sender[T]) Clone() *Sender[T] {
	c := &Sender[T]{q: s.q}
	if s.closed.Load() {
		c.closed.Store(true)
		return c
	}
	s.q.senders.Add(1)
	return c
}

// Close releases this handle. It is safe to call more than once.
func (s *Sender[T]) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.q.senders.Add(-1)
	}
}
