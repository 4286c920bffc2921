package command

import (
	"github.com/dreamware/kvresp/internal/resp"
	"github.com/dreamware/kvresp/internal/store"
)

// Command is a decoded, arity-checked request ready to run against a store
// handle. Build validates and converts a request's arguments once; Apply
// may be called exactly once against the resulting record.
type Command interface {
	Apply(s *store.Store) resp.Reply
}

// BuildError reports that a request's arguments could not be turned into a
// Command: wrong arity, a non-integer where LRANGE expects one, or (for
// MSET) an odd trailing key with no paired value. It always becomes a
// "-ERR ..." reply; unlike a resp.ProtocolError, it never closes the
// connection — spec.md §7 classifies bad arguments as a reply-and-continue
// condition, not a protocol failure.
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string { return e.Message }

func arityError(name string) *BuildError {
	return &BuildError{Message: "ERR wrong number of arguments for '" + name + "' command"}
}

func notIntegerError() *BuildError {
	return &BuildError{Message: "ERR value is not an integer or out of range"}
}
