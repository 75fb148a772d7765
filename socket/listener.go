package socket

/**
 * A blocking IPv4/TCP listener over raw OS sockets.
 *
 * The lifecycle keeps create, bind and listen as distinct observable steps so
 * that the backlog and the bound address stay under caller control:
 *
 *   New -> Bind -> Listen -> Accept (any number of times) -> Close
 */

import (
	"net/netip"
	"syscall"
)

type state int

const (
	stateCreated state = iota
	stateBound
	stateListening
	stateClosed
)

// Listener is a passive IPv4/TCP endpoint. The bound address and backlog are
// fixed at creation; the descriptor is valid from a successful New until
// Close.
//
// A Listener owns none of the connections it accepts. Every Conn returned by
// Accept is handed off to the caller, which is solely responsible for closing
// it.
type Listener struct {
	fd      int
	addr    netip.Addr
	port    uint16
	backlog int
	state   state
}

// New allocates an IPv4 stream socket for ip:port with the given pending
// connection queue length. The ip must already be a valid dotted-decimal
// IPv4 string; resolution policy for bad input (wildcard fallback vs reject)
// belongs to the caller, see config.Validate.
//
// Descriptor exhaustion surfaces as *AllocationError, any other socket(2)
// failure as *SocketCreationError. No descriptor is leaked on either path.
func New(ip string, port uint16, backlog int) (*Listener, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return nil, &InvalidAddressError{Addr: ip}
	}
	if backlog < 0 {
		backlog = 0
	}
	fd, err := syscall.Socket(syscall.AF_INET, syscall.SOCK_STREAM, syscall.IPPROTO_TCP)
	if err != nil {
		if err == syscall.EMFILE || err == syscall.ENFILE ||
			err == syscall.ENOBUFS || err == syscall.ENOMEM {
			return nil, &AllocationError{Err: err}
		}
		return nil, &SocketCreationError{Err: err}
	}
	// allow fast rebinds across restarts, the port may still be in TIME_WAIT
	if err := syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1); err != nil {
		_ = syscall.Close(fd)
		return nil, &SocketCreationError{Err: err}
	}
	return &Listener{
		fd:      fd,
		addr:    addr,
		port:    port,
		backlog: backlog,
	}, nil
}

// Bind names the socket at the OS level. Valid only in the created state; a
// failed bind leaves the listener in the created state and it may be
// re-attempted.
func (l *Listener) Bind() error {
	switch l.state {
	case stateClosed:
		return &BindError{Addr: l.Addr(), Err: ErrClosed}
	case stateBound, stateListening:
		return &BindError{Addr: l.Addr(), Err: ErrAlreadyBound}
	}
	sa := &syscall.SockaddrInet4{Port: int(l.port), Addr: l.addr.As4()}
	if err := syscall.Bind(l.fd, sa); err != nil {
		return &BindError{Addr: l.Addr(), Err: err}
	}
	l.state = stateBound
	return nil
}

// Listen marks the socket passive with the backlog chosen at creation. Valid
// only in the bound state.
func (l *Listener) Listen() error {
	switch l.state {
	case stateClosed:
		return &ListenError{Addr: l.Addr(), Err: ErrClosed}
	case stateCreated:
		return &ListenError{Addr: l.Addr(), Err: ErrNotBound}
	case stateListening:
		return nil
	}
	if err := syscall.Listen(l.fd, l.backlog); err != nil {
		return &ListenError{Addr: l.Addr(), Err: err}
	}
	l.state = stateListening
	return nil
}

// Accept blocks until a pending connection is available and hands it to the
// caller. The listener stays usable after an *AcceptError; pending
// connections other than the one dequeued are unaffected.
func (l *Listener) Accept() (*Conn, error) {
	switch l.state {
	case stateClosed:
		return nil, &AcceptError{Err: ErrClosed}
	case stateCreated, stateBound:
		return nil, &AcceptError{Err: ErrNotListening}
	}
	nfd, sa, err := syscall.Accept(l.fd)
	if err != nil {
		return nil, &AcceptError{Err: err}
	}
	peer, ok := sa.(*syscall.SockaddrInet4)
	if !ok {
		_ = syscall.Close(nfd)
		return nil, &AcceptError{Err: syscall.EAFNOSUPPORT}
	}
	return &Conn{
		fd:       nfd,
		peerAddr: netip.AddrFrom4(peer.Addr),
		peerPort: uint16(peer.Port),
	}, nil
}

// Addr reports the listener's address. Once bound it reflects the address
// the kernel actually assigned, so a port of 0 resolves to the chosen port.
func (l *Listener) Addr() string {
	return netip.AddrPortFrom(l.addr, l.Port()).String()
}

// Port reports the bound port, resolving port 0 after a successful Bind.
func (l *Listener) Port() uint16 {
	if l.state == stateBound || l.state == stateListening {
		if sa, err := syscall.Getsockname(l.fd); err == nil {
			if sa4, ok := sa.(*syscall.SockaddrInet4); ok {
				return uint16(sa4.Port)
			}
		}
	}
	return l.port
}

// Backlog reports the pending connection queue length requested at creation.
func (l *Listener) Backlog() int {
	return l.backlog
}

// Close releases the descriptor. Idempotent: closing a closed listener is a
// no-op. Reachable from every state so no exit path leaks the handle.
func (l *Listener) Close() error {
	if l.state == stateClosed {
		return nil
	}
	l.state = stateClosed
	return syscall.Close(l.fd)
}
