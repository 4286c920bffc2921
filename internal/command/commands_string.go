package command

import (
	"github.com/dreamware/kvresp/internal/resp"
	"github.com/dreamware/kvresp/internal/store"
)

// Set implements SET key value [EX seconds | PX milliseconds]. At most one
// expiry clause is accepted; its keyword is not inspected and its number
// is only checked to be an integer — spec.md's non-goals exclude expiry
// enforcement, so the clause is accepted and discarded.
type Set struct {
	Key   string
	Value []byte
}

func buildSet(args [][]byte) (Command, error) {
	// total arity 3 or 5 => args (key, value[, EX|PX, n]) has length 2 or 4
	if len(args) != 2 && len(args) != 4 {
		return nil, arityError("SET")
	}
	if len(args) == 4 {
		if _, err := parseInt64(args[3]); err != nil {
			return nil, notIntegerError()
		}
	}
	return &Set{Key: string(args[0]), Value: cloneArg(args[1])}, nil
}

func (c *Set) Apply(s *store.Store) resp.Reply {
	s.Set(c.Key, c.Value)
	return resp.Simple("OK")
}

// Get implements GET key.
type Get struct {
	Key string
}

func buildGet(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, arityError("GET")
	}
	return &Get{Key: string(args[0])}, nil
}

func (c *Get) Apply(s *store.Store) resp.Reply {
	v, err := s.Get(c.Key)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	if v == nil {
		return resp.NilBulk()
	}
	return resp.Bulk(v)
}

// Del implements DEL key [key ...].
type Del struct {
	Keys []string
}

func buildDel(args [][]byte) (Command, error) {
	if len(args) < 1 {
		return nil, arityError("DEL")
	}
	return &Del{Keys: toStrings(args)}, nil
}

func (c *Del) Apply(s *store.Store) resp.Reply {
	return resp.Integer(int64(s.Del(c.Keys...)))
}

// MGet implements MGET key [key ...].
type MGet struct {
	Keys []string
}

func buildMGet(args [][]byte) (Command, error) {
	if len(args) < 1 {
		return nil, arityError("MGET")
	}
	return &MGet{Keys: toStrings(args)}, nil
}

func (c *MGet) Apply(s *store.Store) resp.Reply {
	return resp.BulkArray(s.MGet(c.Keys...))
}

// MSet implements MSET key value [key value ...].
type MSet struct {
	Pairs []store.KV
}

func buildMSet(args [][]byte) (Command, error) {
	if len(args) < 2 || len(args)%2 != 0 {
		return nil, arityError("MSET")
	}
	pairs := make([]store.KV, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, store.KV{Key: string(args[i]), Value: cloneArg(args[i+1])})
	}
	return &MSet{Pairs: pairs}, nil
}

func (c *MSet) Apply(s *store.Store) resp.Reply {
	s.MSet(c.Pairs...)
	return resp.Simple("OK")
}

// Exists implements EXISTS key [key ...], supplemental to spec.md's command
// surface — see SPEC_FULL.md §4.5.
type Exists struct {
	Keys []string
}

func buildExists(args [][]byte) (Command, error) {
	if len(args) < 1 {
		return nil, arityError("EXISTS")
	}
	return &Exists{Keys: toStrings(args)}, nil
}

func (c *Exists) Apply(s *store.Store) resp.Reply {
	return resp.Integer(int64(s.Exists(c.Keys...)))
}

// Type implements TYPE key, supplemental to spec.md's command surface —
// see SPEC_FULL.md §4.5.
type Type struct {
	Key string
}

func buildType(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, arityError("TYPE")
	}
	return &Type{Key: string(args[0])}, nil
}

func (c *Type) Apply(s *store.Store) resp.Reply {
	return resp.Simple(s.TypeName(c.Key))
}

// StrLen implements STRLEN key, supplemental to spec.md's command
// surface — see SPEC_FULL.md §4.5.
type StrLen struct {
	Key string
}

func buildStrLen(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, arityError("STRLEN")
	}
	return &StrLen{Key: string(args[0])}, nil
}

func (c *StrLen) Apply(s *store.Store) resp.Reply {
	n, err := s.StrLen(c.Key)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	return resp.Integer(int64(n))
}
