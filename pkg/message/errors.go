package message

import "errors"

var (
	// ErrFull is returned by Send when the queue is at capacity.
	ErrFull = errors.New("message: sending on a full channel")

	// ErrDisconnected is returned by Send when no receiver is left.
	ErrDisconnected = errors.New("message: sending on a disconnected channel")
)
