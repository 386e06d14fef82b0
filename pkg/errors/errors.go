package errors

import "fmt"

// DecodeError indicates a frame with a recognized type tag whose payload could
// not be unmarshaled into the matching variant.
type DecodeError struct {
	FrameType string
	Cause     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Malformed payload for frame type=%q: %v", e.FrameType, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// UnknownFrameTypeError indicates a well-formed frame whose type tag is not
// part of the schema. The connection layer decides whether that is fatal.
type UnknownFrameTypeError struct {
	FrameType string
}

func (e *UnknownFrameTypeError) Error() string {
	return fmt.Sprintf("Unknown frame type=%q", e.FrameType)
}

// QueueFullError is returned when the outbound queue cannot accept another
// frame without blocking.
type QueueFullError struct {
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("Outbound queue full (capacity=%d)", e.Capacity)
}

// ConnectionClosedError is returned on submission through a handle whose
// connection has already been torn down.
type ConnectionClosedError struct{}

func (e *ConnectionClosedError) Error() string {
	return "Connection is closed"
}
