// Package store implements the sharded, concurrent, typed key space at the
// heart of the server: a fixed array of independently RWMutex-locked shards,
// each holding a map from key to a tagged string/list/set value.
//
// A *Store is a cheap handle: it is a thin struct wrapping a slice of shard
// pointers, so copying or passing the pointer around (one per accepted
// connection, as the acceptor does) never duplicates the underlying data.
// All mutation happens through per-shard locks; no two shards are ever
// locked at once, so cross-key commands (MGET, MSET, DEL) cannot deadlock.
package store

import (
	"hash/fnv"
	"sync/atomic"
)

// DefaultShardCount is the number of shards used when none is configured.
// A power of two keeps the modulo routing's distribution even.
const DefaultShardCount = 32

// Store is a shared handle to the shard array. It has no mutable state of
// its own beyond the (fixed-size, never resized) shard slice, so it is safe
// to read concurrently from many goroutines without any synchronization at
// this level — all synchronization happens inside each shard.
type Store struct {
	shards []*shard
}

// New creates a Store with the given number of shards. shardCount <= 0
// falls back to DefaultShardCount.
func New(shardCount int) *Store {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = newShard()
	}
	return &Store{shards: shards}
}

// shardFor routes a key to its shard via FNV-1a, exactly the hash the
// teacher's shard.OwnsKey uses for key-to-shard assignment. The specific
// hash function is not externally observable (callers never see a shard
// index), so any stable, fast, well-distributed hash would do; FNV-1a is
// the one already idiomatic in this codebase.
func (s *Store) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// --- string commands ---

// Get returns the current string value for key, or nil if the key is
// absent. If key holds a list or set, it returns ErrWrongType.
func (s *Store) Get(key string) ([]byte, error) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	atomic.AddUint64(&sh.ops.reads, 1)
	v, ok := sh.data[key]
	if !ok {
		return nil, nil
	}
	if v.kind != kindString {
		return nil, ErrWrongType
	}
	return cloneBytes(v.str), nil
}

// Set stores val under key, creating the key if absent and overwriting any
// existing value regardless of its prior variant — SET always produces a
// string, unlike the typed write commands below which refuse a
// variant-incompatible key.
func (s *Store) Set(key string, val []byte) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	atomic.AddUint64(&sh.ops.writes, 1)
	sh.data[key] = newStringValue(val)
}

// MGet returns a slice aligned 1:1 with keys: the current string value for
// each key that holds a string, or nil for an absent key or a key holding a
// different variant. It never errors — spec.md calls this out explicitly so
// that a single wrong-type key in a batch doesn't fail the whole command.
func (s *Store) MGet(keys ...string) [][]byte {
	out := make([][]byte, len(keys))
	for i, key := range keys {
		v, err := s.Get(key)
		if err != nil {
			out[i] = nil
			continue
		}
		out[i] = v
	}
	return out
}

// KV is one key/value pair for MSet.
type KV struct {
	Key   string
	Value []byte
}

// MSet writes every pair, each routed and locked independently with no
// cross-pair atomicity: a reader can observe some pairs written and others
// not yet written.
func (s *Store) MSet(pairs ...KV) {
	for _, kv := range pairs {
		s.Set(kv.Key, kv.Value)
	}
}

// Del removes each key that is present (of any variant) and returns the
// count actually deleted. Deleting an absent key is a no-op, not an error.
func (s *Store) Del(keys ...string) int {
	deleted := 0
	for _, key := range keys {
		sh := s.shardFor(key)
		sh.mu.Lock()
		if _, ok := sh.data[key]; ok {
			delete(sh.data, key)
			deleted++
			atomic.AddUint64(&sh.ops.writes, 1)
		}
		sh.mu.Unlock()
	}
	return deleted
}

// Exists returns the count of the given keys that are currently present, of
// any variant. Unlike MGET it never distinguishes by type — a key holding a
// list still counts. Supplemental to spec.md's command surface; see
// SPEC_FULL.md §4.5.
func (s *Store) Exists(keys ...string) int {
	count := 0
	for _, key := range keys {
		sh := s.shardFor(key)
		sh.mu.RLock()
		_, ok := sh.data[key]
		atomic.AddUint64(&sh.ops.reads, 1)
		sh.mu.RUnlock()
		if ok {
			count++
		}
	}
	return count
}

// TypeName reports the stored variant for key: "string", "list", "set", or
// "none" if the key is absent. Supplemental to spec.md's command surface;
// see SPEC_FULL.md §4.5.
func (s *Store) TypeName(key string) string {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	atomic.AddUint64(&sh.ops.reads, 1)
	v, ok := sh.data[key]
	if !ok {
		return "none"
	}
	switch v.kind {
	case kindString:
		return "string"
	case kindList:
		return "list"
	case kindSet:
		return "set"
	default:
		return "none"
	}
}

// StrLen returns the byte length of the string value at key, 0 if absent,
// or ErrWrongType if key holds a different variant. Supplemental to
// spec.md's command surface; see SPEC_FULL.md §4.5.
func (s *Store) StrLen(key string) (int, error) {
	v, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	return len(v), nil
}

// --- list commands ---

// writeList runs fn against the list at key, creating an empty list first
// if key is absent, and returns ErrWrongType without mutating anything if
// key holds a different variant. This is the one typed get-or-create
// dispatch rule spec.md §4.2 requires for every list-mutating command.
func (s *Store) writeList(key string, fn func(*list)) error {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	atomic.AddUint64(&sh.ops.writes, 1)
	v, ok := sh.data[key]
	if !ok {
		v = newListValue()
		sh.data[key] = v
	} else if v.kind != kindList {
		return ErrWrongType
	}
	fn(v.list)
	return nil
}

// readList runs fn against the list at key if present, returning zero/nil
// (via fn never being called) when key is absent, and ErrWrongType if key
// holds a different variant.
func (s *Store) readList(key string, fn func(*list)) error {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	atomic.AddUint64(&sh.ops.reads, 1)
	v, ok := sh.data[key]
	if !ok {
		return nil
	}
	if v.kind != kindList {
		return ErrWrongType
	}
	fn(v.list)
	return nil
}

// LPush prepends values to the list at key (creating it if absent) and
// returns the new length.
func (s *Store) LPush(key string, values ...[]byte) (int, error) {
	var n int
	err := s.writeList(key, func(l *list) { n = l.lpush(values...) })
	return n, err
}

// RPush appends values to the list at key (creating it if absent) and
// returns the new length.
func (s *Store) RPush(key string, values ...[]byte) (int, error) {
	var n int
	err := s.writeList(key, func(l *list) { n = l.rpush(values...) })
	return n, err
}

// LPop removes and returns the head element of the list at key, or nil if
// the list is empty or the key is absent.
func (s *Store) LPop(key string) ([]byte, error) {
	var out []byte
	err := s.writeList(key, func(l *list) { out = l.lpop() })
	return out, err
}

// RPop removes and returns the tail element of the list at key, or nil if
// the list is empty or the key is absent.
func (s *Store) RPop(key string) ([]byte, error) {
	var out []byte
	err := s.writeList(key, func(l *list) { out = l.rpop() })
	return out, err
}

// LLen returns the length of the list at key, or 0 if absent.
func (s *Store) LLen(key string) (int, error) {
	var n int
	err := s.readList(key, func(l *list) { n = l.llen() })
	return n, err
}

// LRange returns the elements of the list at key in [start, stop] after
// Redis-compatible normalization (see internal/store/value.go), or an empty
// slice if key is absent.
func (s *Store) LRange(key string, start, stop int64) ([][]byte, error) {
	var out [][]byte
	err := s.readList(key, func(l *list) { out = l.lrange(start, stop) })
	return out, err
}

// --- set commands ---

func (s *Store) writeSet(key string, fn func(*set)) error {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	atomic.AddUint64(&sh.ops.writes, 1)
	v, ok := sh.data[key]
	if !ok {
		v = newSetValue()
		sh.data[key] = v
	} else if v.kind != kindSet {
		return ErrWrongType
	}
	fn(v.set)
	return nil
}

func (s *Store) readSet(key string, fn func(*set)) error {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	atomic.AddUint64(&sh.ops.reads, 1)
	v, ok := sh.data[key]
	if !ok {
		return nil
	}
	if v.kind != kindSet {
		return ErrWrongType
	}
	fn(v.set)
	return nil
}

// SAdd inserts members into the set at key (creating it if absent) and
// returns the count that were not already present.
func (s *Store) SAdd(key string, members ...[]byte) (int, error) {
	var n int
	err := s.writeSet(key, func(st *set) { n = st.sadd(members...) })
	return n, err
}

// SMembers returns every member of the set at key, in unspecified order, or
// an empty slice if absent.
func (s *Store) SMembers(key string) ([][]byte, error) {
	var out [][]byte
	err := s.readSet(key, func(st *set) { out = st.smembers() })
	return out, err
}

// SCard returns the cardinality of the set at key, or 0 if absent.
func (s *Store) SCard(key string) (int, error) {
	var n int
	err := s.readSet(key, func(st *set) { n = st.scard() })
	return n, err
}

// --- introspection ---

// Stats is a process-wide snapshot of per-shard activity, generalizing the
// teacher's shard.ShardStats/Info() pair to this store's wider command
// surface. See SPEC_FULL.md §9.4.
type Stats struct {
	Shards []ShardStats
}

// Stats collects a snapshot of every shard's counters. Each shard is locked
// only briefly (for its key count); it is never locked together with
// another shard, so this cannot race with or block concurrent operations
// for long.
func (s *Store) Stats() Stats {
	shards := make([]ShardStats, len(s.shards))
	for i, sh := range s.shards {
		shards[i] = sh.stats()
	}
	return Stats{Shards: shards}
}
