package command

import (
	"github.com/dreamware/kvresp/internal/resp"
	"github.com/dreamware/kvresp/internal/store"
)

// LPush implements LPUSH key value [value ...].
type LPush struct {
	Key    string
	Values [][]byte
}

func buildLPush(args [][]byte) (Command, error) {
	if len(args) < 2 {
		return nil, arityError("LPUSH")
	}
	return &LPush{Key: string(args[0]), Values: cloneArgs(args[1:])}, nil
}

func (c *LPush) Apply(s *store.Store) resp.Reply {
	n, err := s.LPush(c.Key, c.Values...)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	return resp.Integer(int64(n))
}

// RPush implements RPUSH key value [value ...].
type RPush struct {
	Key    string
	Values [][]byte
}

func buildRPush(args [][]byte) (Command, error) {
	if len(args) < 2 {
		return nil, arityError("RPUSH")
	}
	return &RPush{Key: string(args[0]), Values: cloneArgs(args[1:])}, nil
}

func (c *RPush) Apply(s *store.Store) resp.Reply {
	n, err := s.RPush(c.Key, c.Values...)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	return resp.Integer(int64(n))
}

// LPop implements LPOP key.
type LPop struct {
	Key string
}

func buildLPop(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, arityError("LPOP")
	}
	return &LPop{Key: string(args[0])}, nil
}

func (c *LPop) Apply(s *store.Store) resp.Reply {
	v, err := s.LPop(c.Key)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	if v == nil {
		return resp.NilBulk()
	}
	return resp.Bulk(v)
}

// RPop implements RPOP key.
type RPop struct {
	Key string
}

func buildRPop(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, arityError("RPOP")
	}
	return &RPop{Key: string(args[0])}, nil
}

func (c *RPop) Apply(s *store.Store) resp.Reply {
	v, err := s.RPop(c.Key)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	if v == nil {
		return resp.NilBulk()
	}
	return resp.Bulk(v)
}

// LLen implements LLEN key.
type LLen struct {
	Key string
}

func buildLLen(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, arityError("LLEN")
	}
	return &LLen{Key: string(args[0])}, nil
}

func (c *LLen) Apply(s *store.Store) resp.Reply {
	n, err := s.LLen(c.Key)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	return resp.Integer(int64(n))
}

// LRange implements LRANGE key start stop.
type LRange struct {
	Key         string
	Start, Stop int64
}

func buildLRange(args [][]byte) (Command, error) {
	if len(args) != 3 {
		return nil, arityError("LRANGE")
	}
	start, err := parseInt64(args[1])
	if err != nil {
		return nil, notIntegerError()
	}
	stop, err := parseInt64(args[2])
	if err != nil {
		return nil, notIntegerError()
	}
	return &LRange{Key: string(args[0]), Start: start, Stop: stop}, nil
}

func (c *LRange) Apply(s *store.Store) resp.Reply {
	vals, err := s.LRange(c.Key, c.Start, c.Stop)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	return resp.BulkArray(vals)
}

func cloneArgs(args [][]byte) [][]byte {
	out := make([][]byte, len(args))
	for i, a := range args {
		out[i] = cloneArg(a)
	}
	return out
}
