// Package server implements the per-connection request pipeline and the
// acceptor that binds a listener and spawns one pipeline per socket, per
// spec.md §4.6–§4.7.
package server

import (
	"errors"
	"io"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamware/kvresp/internal/command"
	"github.com/dreamware/kvresp/internal/resp"
	"github.com/dreamware/kvresp/internal/store"
)

// conn runs the decode/dispatch/encode/flush loop for one accepted socket.
// It carries no synchronization of its own — a conn is only ever driven by
// the single goroutine the acceptor spawned for it — and holds a cloned
// store handle, cheap to copy since Store itself holds only shard
// pointers.
type conn struct {
	id    string
	nc    net.Conn
	dec   *resp.Decoder
	enc   *resp.Encoder
	store *store.Store
	log   *zap.Logger
}

func newConn(nc net.Conn, st *store.Store, log *zap.Logger) *conn {
	id := uuid.NewString()
	return &conn{
		id:    id,
		nc:    nc,
		dec:   resp.NewDecoder(nc),
		enc:   resp.NewEncoder(),
		store: st,
		log:   log.With(zap.String("conn_id", id), zap.String("remote_addr", nc.RemoteAddr().String())),
	}
}

// serve runs the request loop until the connection closes or a fatal error
// occurs, per spec.md §4.6. It never returns an error the caller must act
// on — every failure has already been logged and the socket is the only
// resource left to release, which the caller does via defer.
func (c *conn) serve() {
	c.log.Info("connection accepted")
	defer c.log.Info("connection closed")

	for {
		args, err := c.dec.DecodeRequest()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			var perr *resp.ProtocolError
			if errors.As(err, &perr) {
				c.writeAndClose(resp.Err(resp.ProtocolErrorText(perr.Detail)))
				return
			}
			c.log.Warn("read error", zap.Error(err))
			return
		}

		if len(args) == 0 {
			continue
		}
		name := string(args[0])
		cmd, ok, err := command.Build(name, args[1:])
		if !ok {
			if !c.reply(resp.Err(resp.ErrUnknownCommand)) {
				return
			}
			continue
		}
		if err != nil {
			if !c.reply(resp.Err(errPrefix(err))) {
				return
			}
			continue
		}

		reply := cmd.Apply(c.store)
		if !c.reply(reply) {
			return
		}
	}
}

// reply serializes and flushes a single reply, returning false if the
// flush failed — the caller must close the connection in that case, per
// spec.md §7's IO error recovery ("close without further attempts to
// write").
func (c *conn) reply(r resp.Reply) bool {
	c.enc.Put(r)
	if _, err := c.enc.Flush(c.nc); err != nil {
		c.log.Warn("write error", zap.Error(err))
		return false
	}
	return true
}

// writeAndClose attempts one best-effort reply before the caller closes
// the socket; a failed write here is not itself cause for further action,
// matching spec.md §7's note that partial replies at teardown are
// acceptable.
func (c *conn) writeAndClose(r resp.Reply) {
	c.enc.Put(r)
	_, _ = c.enc.Flush(c.nc)
}

func errPrefix(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
