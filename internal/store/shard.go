package store

import (
	"sync"
	"sync/atomic"
)

// shardOps tracks per-shard operation counts, updated with sync/atomic so
// readers never contend with the shard's RWMutex just to inspect counters.
// Adapted from the teacher's OperationStats shape (Gets/Puts/Deletes) into
// two counters, reads and writes, covering every command that touches this
// shard (list/set ops included) since the command surface here is wider
// than the teacher's plain GET/PUT/DELETE.
type shardOps struct {
	reads  uint64
	writes uint64
}

// ShardStats is a point-in-time snapshot of one shard's activity and size,
// safe to retain and serialize. Mirrors the teacher's ShardStats/ShardInfo
// pair, collapsed into one struct since this store has no replica/migration
// state to report separately.
type ShardStats struct {
	Reads  uint64
	Writes uint64
	Keys   int
}

// shard is one independently-locked bucket of the key space. Read-only
// commands take the RWMutex's read lock; mutating commands take the write
// lock. No shard ever waits on another shard's lock.
type shard struct {
	mu   sync.RWMutex
	data map[string]*value
	ops  shardOps
}

func newShard() *shard {
	return &shard{data: make(map[string]*value)}
}

func (s *shard) stats() ShardStats {
	s.mu.RLock()
	n := len(s.data)
	s.mu.RUnlock()
	return ShardStats{
		Reads:  atomic.LoadUint64(&s.ops.reads),
		Writes: atomic.LoadUint64(&s.ops.writes),
		Keys:   n,
	}
}
