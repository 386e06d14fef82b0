package socket

import (
	"sync/atomic"

	gkerrors "github.com/chatkc/gokc/pkg/errors"
	"github.com/chatkc/gokc/pkg/protocol"
)

// Conn is the outbound submission handle for one established connection. It
// is a clone-safe sender onto the supervisor's bounded queue; the queue
// itself is the only synchronization callers need.
type Conn struct {
	outbound chan protocol.Outbound
	closed   atomic.Bool
}

func newConn(capacity int) *Conn {
	return &Conn{
		outbound: make(chan protocol.Outbound, capacity),
	}
}

// Send enqueues a frame without blocking on network I/O. A full queue yields
// *errors.QueueFullError so the caller sees explicit backpressure; a handle
// whose connection has been torn down yields *errors.ConnectionClosedError.
// A frame that squeezes in while teardown is in flight is silently dropped.
func (c *Conn) Send(frame protocol.Outbound) error {
	if c.closed.Load() {
		return &gkerrors.ConnectionClosedError{}
	}
	select {
	case c.outbound <- frame:
		return nil
	default:
		return &gkerrors.QueueFullError{Capacity: cap(c.outbound)}
	}
}

// Closed reports whether the owning connection has been torn down.
func (c *Conn) Closed() bool {
	return c.closed.Load()
}

func (c *Conn) close() {
	c.closed.Store(true)
}
