// Command kvresp runs the in-memory key-value server: a single TCP
// listener speaking a RESP-compatible wire protocol against a sharded,
// concurrent store.
//
// Configuration, in increasing precedence:
//   - compile-time default (127.0.0.1:9694, 32 shards)
//   - --config YAML file
//   - KVRESP_LISTEN_ADDR environment variable
//   - a single positional address argument
//
// Example usage:
//
//	kvresp
//	kvresp 0.0.0.0:6380
//	kvresp --config /etc/kvresp.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dreamware/kvresp/internal/config"
	"github.com/dreamware/kvresp/internal/server"
	"github.com/dreamware/kvresp/internal/store"
)

// shutdownGrace bounds how long in-flight connections get to finish after
// a shutdown signal before the process exits regardless.
const shutdownGrace = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	var cliAddr string
	if flag.NArg() > 0 {
		cliAddr = flag.Arg(0)
	}

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "kvresp: building logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, *configPath, cliAddr); err != nil {
		log.Error("exiting", zap.Error(err))
		os.Exit(1)
	}
}

func run(log *zap.Logger, configPath, cliAddr string) error {
	cfg, err := config.Load(configPath, cliAddr)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st := store.New(cfg.ShardCount)
	acceptor := server.New(cfg.ListenAddr, st, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- acceptor.Serve(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	// ctx cancellation already made acceptor.Serve begin closing every
	// tracked connection and waiting for their service loops; errCh fires
	// once that drain completes. shutdownGrace only bounds how long this
	// process waits for it before giving up.
	select {
	case err := <-errCh:
		return err
	case <-time.After(shutdownGrace):
		return fmt.Errorf("shutdown did not complete within %s", shutdownGrace)
	}
}
