package tcp

/**
 * The fixed greeting/acknowledgement exchange served to every client
 */

import (
	"context"
	"strings"

	"github.com/hdt3213/tcplite/lib/logger"
	"github.com/hdt3213/tcplite/socket"
)

// Wire texts of the exchange. Fixed, not configurable.
const (
	Greeting = "Welcome to the server!\n"
	Ack      = "Message received\n"
)

// DefaultBufferSize bounds a single receive; one byte is reserved so the
// text remains printable as a C-style string by peers that expect that.
const DefaultBufferSize = 1024

// GreetHandler sends the greeting, waits for one bounded message and
// acknowledges it. If the peer closes without sending anything the exchange
// is abandoned and no acknowledgement is sent.
type GreetHandler struct {
	bufferSize int
}

// MakeGreetHandler creates a GreetHandler with the default receive bound.
func MakeGreetHandler() *GreetHandler {
	return &GreetHandler{bufferSize: DefaultBufferSize}
}

// MakeGreetHandlerWithBuffer creates a GreetHandler receiving at most
// bufferSize-1 bytes per exchange.
func MakeGreetHandlerWithBuffer(bufferSize int) *GreetHandler {
	if bufferSize <= 1 {
		bufferSize = DefaultBufferSize
	}
	return &GreetHandler{bufferSize: bufferSize}
}

func (h *GreetHandler) Handle(ctx context.Context, conn *socket.Conn) {
	if err := conn.SendAll([]byte(Greeting)); err != nil {
		logger.Warnf("send greeting to %s: %v", conn.RemoteAddr(), err)
		return
	}
	msg, err := conn.Receive(h.bufferSize - 1)
	if err != nil {
		logger.Warnf("receive from %s: %v", conn.RemoteAddr(), err)
		return
	}
	if len(msg) == 0 {
		logger.Infof("%s closed without sending data", conn.RemoteAddr())
		return
	}
	logger.Infof("received %d bytes from %s: %s",
		len(msg), conn.RemoteAddr(), strings.TrimSpace(string(msg)))
	if err := conn.SendAll([]byte(Ack)); err != nil {
		logger.Warnf("send ack to %s: %v", conn.RemoteAddr(), err)
	}
}

func (h *GreetHandler) Close() error {
	return nil
}
