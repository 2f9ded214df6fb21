package message

import "sync/atomic"

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 100

// queue is the storage shared by every handle of one channel.
type queue[T any] struct {
	items     chan T
	senders   atomic.Int64
	receivers atomic.Int64
	dropped   atomic.Uint64
}

func (q *queue[T]) pending() int  { return len(q.items) }
func (q *queue[T]) capacity() int { return cap(q.items) }

// Channel is a bounded multi-producer multi-consumer queue.
type Channel[T any] struct {
	sender   *Sender[T]
	receiver *Receiver[T]
}

// New creates a channel that holds at most capacity messages.
// A capacity of zero or less selects DefaultCapacity.
func New[T any](capacity int) *Channel[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	q := &queue[T]{items: make(chan T, capacity)}
	q.senders.Store(1)
	q.receivers.Store(1)

	return &Channel[T]{
		sender:   &Sender[T]{q: q},
		receiver: &Receiver[T]{q: q},
	}
}

// Split returns the sending and receiving halves of the channel.
func (c *Channel[T]) Split() (*Sender[T], *Receiver[T]) {
	return c.sender, c.receiver
}
