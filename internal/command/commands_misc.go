package command

import (
	"github.com/dreamware/kvresp/internal/resp"
	"github.com/dreamware/kvresp/internal/store"
)

// Ping implements PING.
type Ping struct{}

func buildPing(args [][]byte) (Command, error) {
	if len(args) != 0 {
		return nil, arityError("PING")
	}
	return &Ping{}, nil
}

func (c *Ping) Apply(s *store.Store) resp.Reply {
	return resp.Simple("PONG")
}

// CommandIntrospect implements COMMAND, replying with the fixed
// introspection array spec.md §6 requires — enough to satisfy a standard
// client's handshake without describing every command this server
// actually understands.
type CommandIntrospect struct{}

func buildCommandIntrospect(args [][]byte) (Command, error) {
	return &CommandIntrospect{}, nil
}

func commandTuple(name string, arity int64, flags []string, firstKey, lastKey, step int64) resp.Reply {
	flagReplies := make([]resp.Reply, len(flags))
	for i, f := range flags {
		flagReplies[i] = resp.Simple(f)
	}
	return resp.Array([]resp.Reply{
		resp.Bulk([]byte(name)),
		resp.Integer(arity),
		resp.Array(flagReplies),
		resp.Integer(firstKey),
		resp.Integer(lastKey),
		resp.Integer(step),
	})
}

func (c *CommandIntrospect) Apply(s *store.Store) resp.Reply {
	return resp.Array([]resp.Reply{
		commandTuple("ping", -1, []string{"stable", "fast"}, 0, 0, 0),
		commandTuple("command", 0, []string{"random", "loading", "stable"}, 0, 0, 0),
		commandTuple("set", -3, []string{"write", "denyoom"}, 1, 1, 1),
	})
}

// Config implements CONFIG as a stub: any subcommand replies Simple("OK")
// without reading or altering any actual configuration, per spec.md §4.5.
type Config struct{}

func buildConfig(args [][]byte) (Command, error) {
	if len(args) < 1 {
		return nil, arityError("CONFIG")
	}
	return &Config{}, nil
}

func (c *Config) Apply(s *store.Store) resp.Reply {
	return resp.Simple("OK")
}
