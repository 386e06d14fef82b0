package socket

import "github.com/chatkc/gokc/pkg/protocol"

// Event is one item in the connection event sequence. The sequence is
// produced by the supervisor's run loop for the lifetime of the process and
// spans reconnects; consumers type-switch on the concrete variant.
type Event interface {
	isEvent()
}

// Connected is emitted after the socket upgrade and the hello frame both
// succeed. The carried handle stays valid until the next Disconnected event.
type Connected struct {
	Conn *Conn
}

// Disconnected is emitted once per failed dial attempt and once per live
// connection that is torn down, whatever the cause.
type Disconnected struct{}

// Received carries one decoded inbound frame, delivered in socket order.
type Received struct {
	Frame protocol.Frame
}

func (Connected) isEvent() {}

func (Disconnected) isEvent() {}

func (Received) isEvent() {}
