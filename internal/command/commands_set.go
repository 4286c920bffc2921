package command

import (
	"github.com/dreamware/kvresp/internal/resp"
	"github.com/dreamware/kvresp/internal/store"
)

// SAdd implements SADD key member [member ...].
type SAdd struct {
	Key     string
	Members [][]byte
}

func buildSAdd(args [][]byte) (Command, error) {
	if len(args) < 2 {
		return nil, arityError("SADD")
	}
	return &SAdd{Key: string(args[0]), Members: cloneArgs(args[1:])}, nil
}

func (c *SAdd) Apply(s *store.Store) resp.Reply {
	n, err := s.SAdd(c.Key, c.Members...)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	return resp.Integer(int64(n))
}

// SMembers implements SMEMBERS key.
type SMembers struct {
	Key string
}

func buildSMembers(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, arityError("SMEMBERS")
	}
	return &SMembers{Key: string(args[0])}, nil
}

func (c *SMembers) Apply(s *store.Store) resp.Reply {
	vals, err := s.SMembers(c.Key)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	return resp.BulkArray(vals)
}

// SCard implements SCARD key.
type SCard struct {
	Key string
}

func buildSCard(args [][]byte) (Command, error) {
	if len(args) != 1 {
		return nil, arityError("SCARD")
	}
	return &SCard{Key: string(args[0])}, nil
}

func (c *SCard) Apply(s *store.Store) resp.Reply {
	n, err := s.SCard(c.Key)
	if err != nil {
		return wrongTypeOrErr(err)
	}
	return resp.Integer(int64(n))
}
