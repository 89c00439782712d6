package transport

import "errors"

// ErrNotOpen is returned when sending on a connection that is not open.
// Callers treat it as a silent drop.
var ErrNotOpen = errors.New("transport: connection not open")

// ErrBinaryMessage marks an inbound binary message. Inbound messages must
// be JSON text, so binary ones are rejected as malformed.
var ErrBinaryMessage = errors.New("transport: inbound binary message")

// FrameSender sends encoded video frames.
type FrameSender interface {
	SendFrame(data []byte) error
}

// State is the lifecycle state of a connection.
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
