package tcp

import (
	"context"

	"github.com/hdt3213/tcplite/socket"
)

// HandleFunc represents an application handler function
type HandleFunc func(ctx context.Context, conn *socket.Conn)

// Handler services one accepted connection to completion. The serve loop
// closes the connection after Handle returns, so implementations never need
// to.
type Handler interface {
	Handle(ctx context.Context, conn *socket.Conn)
	Close() error
}
