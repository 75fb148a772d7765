package tcp

/**
 * A strictly sequential tcp server
 */

import (
	"context"
	"errors"
	"syscall"

	"github.com/google/uuid"
	"github.com/hdt3213/tcplite/interface/tcp"
	"github.com/hdt3213/tcplite/lib/logger"
	"github.com/hdt3213/tcplite/socket"
)

// Config stores tcp server properties
type Config struct {
	Bind    string `mapstructure:"bind"`
	Port    uint16 `mapstructure:"port"`
	Backlog int    `mapstructure:"backlog"`
}

// ListenAndServe runs the full listener lifecycle for cfg and serves
// connections until the listener fails fatally. Construction-phase failures
// (create, bind, listen) are returned to the caller with no listener left
// open.
func ListenAndServe(cfg *Config, handler tcp.Handler) error {
	listener, err := socket.New(cfg.Bind, cfg.Port, cfg.Backlog)
	if err != nil {
		return err
	}
	defer listener.Close()
	if err := listener.Bind(); err != nil {
		return err
	}
	if err := listener.Listen(); err != nil {
		return err
	}
	logger.Infof("bind: %s, start listening...", listener.Addr())
	return Serve(listener, handler)
}

// Serve accepts and services connections one at a time. The next connection
// is not accepted until the previous one has been handled and closed, so the
// kernel's accept queue (bounded by the listener's backlog) absorbs attempts
// made in the meantime.
//
// Accept, send and receive failures are local to one connection and logged;
// the loop keeps accepting. Serve returns only when the listener itself is
// no longer usable.
func Serve(listener *socket.Listener, handler tcp.Handler) error {
	defer func() {
		_ = handler.Close()
	}()
	ctx := context.Background()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if isFatalAccept(err) {
				logger.Info("listener closed, stop accepting")
				return nil
			}
			logger.Warnf("accept error: %v", err)
			continue
		}
		id := uuid.NewString()
		logger.Infof("accept link from %s (conn %s)", conn.RemoteAddr(), id)
		handler.Handle(ctx, conn)
		_ = conn.Close()
		logger.Debugf("conn %s closed", id)
	}
}

// isFatalAccept reports whether an accept failure means the listener can
// never yield another connection.
func isFatalAccept(err error) bool {
	return errors.Is(err, socket.ErrClosed) ||
		errors.Is(err, socket.ErrNotListening) ||
		errors.Is(err, syscall.EBADF) ||
		errors.Is(err, syscall.EINVAL)
}
