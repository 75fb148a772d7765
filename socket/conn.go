package socket

import (
	"net/netip"
	"syscall"
)

// Conn is an accepted peer connection. It exists only between a successful
// Accept and Close, and is exclusively owned by the caller that accepted it.
type Conn struct {
	fd       int
	peerAddr netip.Addr
	peerPort uint16
	closed   bool
}

// Send queues data for transmission and reports how many bytes the kernel
// accepted. Partial writes are possible: the count may be less than
// len(data), and the caller must reissue Send for the remainder (or use
// SendAll).
func (c *Conn) Send(data []byte) (int, error) {
	if c.closed {
		return 0, &SendError{Err: ErrClosed}
	}
	for {
		n, err := syscall.Write(c.fd, data)
		if err == syscall.EINTR {
			continue
		}
		if err != nil {
			return 0, &SendError{Err: err}
		}
		return n, nil
	}
}

// SendAll retries Send until every byte of data has been accepted or an
// error occurs.
func (c *Conn) SendAll(data []byte) error {
	for len(data) > 0 {
		n, err := c.Send(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Receive blocks until at least one byte arrives or the peer closes its
// write side, then returns up to max bytes. A zero-length result means the
// peer shut down gracefully; it is not an error. A single call may return
// fewer bytes than requested even when more data is in flight.
func (c *Conn) Receive(max int) ([]byte, error) {
	if c.closed {
		return nil, &ReceiveError{Err: ErrClosed}
	}
	if max <= 0 {
		return []byte{}, nil
	}
	buf := make([]byte, max)
	for {
		n, err := syscall.Read(c.fd, buf)
		if err == syscall.EINTR {
			continue
		}
		if err != nil {
			return nil, &ReceiveError{Err: err}
		}
		return buf[:n], nil
	}
}

// RemoteAddr reports the peer's ip:port as resolved at accept time.
func (c *Conn) RemoteAddr() string {
	return netip.AddrPortFrom(c.peerAddr, c.peerPort).String()
}

// RemoteIP reports the peer's IPv4 address in dotted-decimal form.
func (c *Conn) RemoteIP() string {
	return c.peerAddr.String()
}

// RemotePort reports the peer's port.
func (c *Conn) RemotePort() uint16 {
	return c.peerPort
}

// Close releases the descriptor. Idempotent; always safe to call after a
// failed Send or Receive, which never close the connection on their own.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return syscall.Close(c.fd)
}
