package store

import "errors"

// ErrWrongType is returned when a command requires a variant of stored
// value different from what the key currently holds, e.g. LPUSH against a
// key holding a string. The stored value is left completely unchanged.
//
// Usage pattern mirrors a typical sentinel-error check:
//
//	_, err := s.LPush(key, values...)
//	if errors.Is(err, store.ErrWrongType) {
//	    // reply WRONGTYPE, keep connection open
//	}
var ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
