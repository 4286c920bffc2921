package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dreamware/kvresp/internal/store"
)

// pipeHarness drives one conn.serve() loop over an in-memory net.Pipe,
// giving each test a real net.Conn without binding a socket.
type pipeHarness struct {
	t       *testing.T
	client  net.Conn
	reader  *bufio.Reader
	done    chan struct{}
}

func newPipeHarness(t *testing.T) *pipeHarness {
	t.Helper()
	client, server := net.Pipe()
	st := store.New(4)
	c := newConn(server, st, zap.NewNop())

	h := &pipeHarness{t: t, client: client, reader: bufio.NewReader(client), done: make(chan struct{})}
	go func() {
		c.serve()
		close(h.done)
	}()
	t.Cleanup(func() {
		client.Close()
		select {
		case <-h.done:
		case <-time.After(time.Second):
			t.Fatal("conn.serve did not return after client close")
		}
	})
	return h
}

func (h *pipeHarness) send(raw string) {
	h.t.Helper()
	if _, err := h.client.Write([]byte(raw)); err != nil {
		h.t.Fatalf("write: %v", err)
	}
}

func (h *pipeHarness) expect(want string) {
	h.t.Helper()
	buf := make([]byte, len(want))
	if _, err := ioReadFull(h.reader, buf); err != nil {
		h.t.Fatalf("read: %v", err)
	}
	if string(buf) != want {
		h.t.Fatalf("got %q, want %q", buf, want)
	}
}

func ioReadFull(r *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func TestConnPing(t *testing.T) {
	h := newPipeHarness(t)
	h.send("*1\r\n$4\r\nPING\r\n")
	h.expect("+PONG\r\n")
}

func TestConnSetGet(t *testing.T) {
	h := newPipeHarness(t)
	h.send("*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$3\r\nbar\r\n")
	h.expect("+OK\r\n")
	h.send("*2\r\n$3\r\nGET\r\n$1\r\nk\r\n")
	h.expect("$3\r\nbar\r\n")
}

func TestConnGetMissing(t *testing.T) {
	h := newPipeHarness(t)
	h.send("*2\r\n$3\r\nGET\r\n$6\r\nabsent\r\n")
	h.expect("$-1\r\n")
}

func TestConnListRoundTrip(t *testing.T) {
	h := newPipeHarness(t)
	h.send("*3\r\n$5\r\nLPUSH\r\n$1\r\nl\r\n$1\r\na\r\n")
	h.expect(":1\r\n")
	h.send("*4\r\n$6\r\nLRANGE\r\n$1\r\nl\r\n$1\r\n0\r\n$2\r\n-1\r\n")
	h.expect("*1\r\n$1\r\na\r\n")
}

func TestConnWrongType(t *testing.T) {
	h := newPipeHarness(t)
	h.send("*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n")
	h.expect("+OK\r\n")
	h.send("*3\r\n$5\r\nLPUSH\r\n$1\r\nk\r\n$1\r\nx\r\n")
	h.expect("-WRONGTYPE Operation against a key holding the wrong kind of value\r\n")
}

func TestConnUnknownCommand(t *testing.T) {
	h := newPipeHarness(t)
	h.send("*1\r\n$6\r\nBOGUSC\r\n")
	h.expect("-ERR unknown command\r\n")
}

func TestConnSetSAddAndSCard(t *testing.T) {
	h := newPipeHarness(t)
	h.send("*4\r\n$4\r\nSADD\r\n$1\r\ns\r\n$1\r\nx\r\n$1\r\ny\r\n")
	h.expect(":2\r\n")
	h.send("*2\r\n$5\r\nSCARD\r\n$1\r\ns\r\n")
	h.expect(":2\r\n")
}

func TestConnSurvivesArityErrorAndContinues(t *testing.T) {
	h := newPipeHarness(t)
	h.send("*1\r\n$3\r\nDEL\r\n")
	h.expect("-ERR wrong number of arguments for 'DEL' command\r\n")
	h.send("*1\r\n$4\r\nPING\r\n")
	h.expect("+PONG\r\n")
}

func TestConnProtocolErrorClosesConnection(t *testing.T) {
	h := newPipeHarness(t)
	h.send("not-resp-at-all\r\n")
	buf := make([]byte, len("-ERR protocol error: "))
	if _, err := ioReadFull(h.reader, buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf) != "-ERR protocol error: " {
		t.Fatalf("got %q, want protocol error prefix", buf)
	}
	// After the protocol error reply, serve must return (ending the
	// connection) instead of waiting for another request.
	select {
	case <-h.done:
	case <-time.After(time.Second):
		t.Fatal("conn.serve did not return after a protocol error")
	}
}
