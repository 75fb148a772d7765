package socket

import (
	"errors"
	"strconv"
)

// State violation causes, visible through errors.Is on the typed errors below.
var (
	ErrClosed       = errors.New("use of closed socket")
	ErrAlreadyBound = errors.New("socket already bound")
	ErrNotBound     = errors.New("socket not bound")
	ErrNotListening = errors.New("socket not listening")
)

// InvalidAddressError reports a bind address that is not a valid IPv4
// dotted-decimal string.
type InvalidAddressError struct {
	Addr string
}

func (e *InvalidAddressError) Error() string {
	return "socket: invalid IPv4 address " + strconv.Quote(e.Addr)
}

// AllocationError reports that the OS could not hand out a new socket
// descriptor, typically descriptor or buffer exhaustion.
type AllocationError struct {
	Err error
}

func (e *AllocationError) Error() string { return "socket: allocate descriptor: " + e.Err.Error() }
func (e *AllocationError) Unwrap() error { return e.Err }

// SocketCreationError reports a failed socket(2) call for any reason other
// than resource exhaustion.
type SocketCreationError struct {
	Err error
}

func (e *SocketCreationError) Error() string { return "socket: create: " + e.Err.Error() }
func (e *SocketCreationError) Unwrap() error { return e.Err }

// BindError reports a failed bind, carrying the address that was requested.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string { return "socket: bind " + e.Addr + ": " + e.Err.Error() }
func (e *BindError) Unwrap() error { return e.Err }

// ListenError reports a failure to enter the listening state.
type ListenError struct {
	Addr string
	Err  error
}

func (e *ListenError) Error() string { return "socket: listen " + e.Addr + ": " + e.Err.Error() }
func (e *ListenError) Unwrap() error { return e.Err }

// AcceptError reports a failed accept attempt. The listener stays usable,
// callers may simply try again.
type AcceptError struct {
	Err error
}

func (e *AcceptError) Error() string { return "socket: accept: " + e.Err.Error() }
func (e *AcceptError) Unwrap() error { return e.Err }

// SendError is fatal to the connection it occurred on, not to the listener.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return "socket: send: " + e.Err.Error() }
func (e *SendError) Unwrap() error { return e.Err }

// ReceiveError is fatal to the connection it occurred on, not to the
// listener. A graceful peer close is not an error, Receive reports it as a
// zero-length result.
type ReceiveError struct {
	Err error
}

func (e *ReceiveError) Error() string { return "socket: receive: " + e.Err.Error() }
func (e *ReceiveError) Unwrap() error { return e.Err }
