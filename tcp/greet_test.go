package tcp

import (
	"bufio"
	"io"
	"net"
	"testing"

	"github.com/hdt3213/tcplite/socket"
)

func startServer(t *testing.T) *socket.Listener {
	t.Helper()
	listener, err := socket.New("127.0.0.1", 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := listener.Bind(); err != nil {
		t.Fatal(err)
	}
	if err := listener.Listen(); err != nil {
		t.Fatal(err)
	}
	go Serve(listener, MakeGreetHandler())
	t.Cleanup(func() {
		_ = listener.Close()
	})
	return listener
}

func runExchange(t *testing.T, addr string) {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)

	greeting, err := reader.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if greeting != Greeting {
		t.Errorf("greeting %q, want %q", greeting, Greeting)
	}
	if _, err := conn.Write([]byte("ping")); err != nil {
		t.Fatal(err)
	}
	ack, err := reader.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if ack != Ack {
		t.Errorf("ack %q, want %q", ack, Ack)
	}
}

// The exchange must repeat verbatim for clients served one after another.
func TestGreetingExchangeSequentialClients(t *testing.T) {
	listener := startServer(t)
	for i := 0; i < 2; i++ {
		runExchange(t, listener.Addr())
	}
}

// A peer that closes its write side without sending anything gets no
// acknowledgement, and the server keeps serving later clients.
func TestExchangeAbandonedWithoutData(t *testing.T) {
	listener := startServer(t)

	conn, err := net.Dial("tcp", listener.Addr())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)
	greeting, err := reader.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if greeting != Greeting {
		t.Errorf("greeting %q, want %q", greeting, Greeting)
	}
	if err := conn.(*net.TCPConn).CloseWrite(); err != nil {
		t.Fatal(err)
	}
	if line, err := reader.ReadString('\n'); err != io.EOF {
		t.Errorf("got %q, %v after silent close, want EOF and no ack", line, err)
	}

	runExchange(t, listener.Addr())
}

// Serve must treat a closed listener as fatal instead of spinning on
// accept errors.
func TestServeStopsOnClosedListener(t *testing.T) {
	listener, err := socket.New("127.0.0.1", 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := listener.Bind(); err != nil {
		t.Fatal(err)
	}
	if err := listener.Listen(); err != nil {
		t.Fatal(err)
	}
	if err := listener.Close(); err != nil {
		t.Fatal(err)
	}
	if err := Serve(listener, MakeGreetHandler()); err != nil {
		t.Errorf("Serve returned %v on closed listener, want nil", err)
	}
}
