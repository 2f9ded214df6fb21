// Package message provides bounded, non-blocking FIFO channels for
// passing messages between goroutines that must never wait on each other.
//
// A Channel is split into a Sender and a Receiver. Both halves are
// lightweight handles over one shared queue and can be cloned for use
// from several goroutines; the queue itself is internally synchronized.
//
//	ch := message.New[Command](100)
//	tx, rx := ch.Split()
//	if err := tx.Send(Pause{}); errors.Is(err, message.ErrFull) {
//		// caller decides: retry, drop or propagate
//	}
//	tx.SendLossy(Tick{})   // dropped silently when full
//	for _, cmd := range rx.Drain() {
//		...
//	}
//
// Capacity is fixed at construction. Send fails fast with ErrFull when
// the queue is at capacity and with ErrDisconnected once every receiver
// handle has been closed. Drain, DrainLimit and TryRecv return whatever
// is queued and never block.
package message
