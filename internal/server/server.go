package server

import (
	"context"
	"errors"
	"net"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dreamware/kvresp/internal/store"
)

// Acceptor owns the shared store and a TCP listener, spawning one
// connection service per accepted socket. It never blocks on a single
// client: Accept runs in its own goroutine and every accepted socket gets
// its own, per spec.md §4.7.
type Acceptor struct {
	addr  string
	store *store.Store
	log   *zap.Logger

	ln net.Listener

	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates an Acceptor bound to addr, serving st. The listener is not
// opened until Serve is called.
func New(addr string, st *store.Store, log *zap.Logger) *Acceptor {
	return &Acceptor{
		addr:   addr,
		store:  st,
		log:    log,
		conns:  make(map[net.Conn]struct{}),
		stopCh: make(chan struct{}),
	}
}

// Addr returns the listener's bound address. Valid only after Serve has
// successfully opened the listener; useful in tests that bind to ":0".
func (a *Acceptor) Addr() net.Addr {
	return a.ln.Addr()
}

// Serve opens the listener and runs the accept loop until ctx is canceled
// or Shutdown is called. It returns nil on a clean shutdown and a non-nil
// error if the listener itself could not be opened or failed
// unexpectedly.
func (a *Acceptor) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	a.ln = ln
	a.log.Info("listening", zap.String("addr", ln.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-a.stopCh:
		}
		return a.Shutdown()
	})
	g.Go(func() error {
		return a.acceptLoop()
	})
	return g.Wait()
}

func (a *Acceptor) acceptLoop() error {
	for {
		nc, err := a.ln.Accept()
		if err != nil {
			select {
			case <-a.stopCh:
				return nil
			default:
				var netErr net.Error
				if errors.As(err, &netErr) && !netErr.Timeout() {
					return err
				}
				a.log.Warn("accept error", zap.Error(err))
				continue
			}
		}

		a.mu.Lock()
		a.conns[nc] = struct{}{}
		a.mu.Unlock()

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			defer a.untrack(nc)
			defer nc.Close()
			newConn(nc, a.store, a.log).serve()
		}()
	}
}

func (a *Acceptor) untrack(nc net.Conn) {
	a.mu.Lock()
	delete(a.conns, nc)
	a.mu.Unlock()
}

// Shutdown stops accepting new connections, closes every currently tracked
// connection (unblocking their service loops), and waits for every service
// goroutine to finish. It is safe to call more than once and safe to call
// concurrently with Serve. Shutdown does not itself enforce a deadline:
// it waits for every service goroutine however long that takes, so a
// caller that wants a bound on the wait enforces it around the call (as
// cmd/kvresp does with its shutdownGrace timer).
func (a *Acceptor) Shutdown() error {
	a.stopOnce.Do(func() {
		close(a.stopCh)
		if a.ln != nil {
			_ = a.ln.Close()
		}

		a.mu.Lock()
		for nc := range a.conns {
			_ = nc.Close()
		}
		a.mu.Unlock()

		a.wg.Wait()
	})
	return nil
}
