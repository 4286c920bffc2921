// Package resp implements the RESP wire format: an incremental decoder for
// request arrays and a tagged reply model with a vectored-write serializer.
// Grounded on the hand-rolled RESP reader/writer in rsms-ent's redis
// package (resp.go, resp-read.go, resp-write.go), corrected to tolerate
// arbitrary TCP fragmentation as spec.md §4.4 requires.
package resp

// Kind tags which RESP reply variant a Reply holds.
type Kind int

const (
	KindSimple Kind = iota
	KindError
	KindInteger
	KindBulk
	KindArray
)

// Reply is the tagged union every store operation's result is translated
// into before serialization. Exactly one field is meaningful for a given
// Kind:
//
//	KindSimple  -> Text
//	KindError   -> Text
//	KindInteger -> Int
//	KindBulk    -> Bulk (nil Bulk with BulkIsNil true serializes as "$-1\r\n")
//	KindArray   -> Array (nil Array with ArrayIsNil true serializes as "*-1\r\n")
type Reply struct {
	Kind       Kind
	Text       string
	Int        int64
	Bulk       []byte
	BulkIsNil  bool
	Array      []Reply
	ArrayIsNil bool
}

// Simple builds a RESP simple string reply, e.g. Simple("OK") for SET/MSET.
func Simple(text string) Reply { return Reply{Kind: KindSimple, Text: text} }

// Err builds a RESP error reply. text is the full error payload, e.g.
// "WRONGTYPE Operation against a key holding the wrong kind of value".
func Err(text string) Reply { return Reply{Kind: KindError, Text: text} }

// Integer builds a RESP integer reply.
func Integer(n int64) Reply { return Reply{Kind: KindInteger, Int: n} }

// Bulk builds a RESP bulk string reply carrying b. b is never copied or
// mutated by the serializer, so callers must not hand in a slice they
// intend to mutate afterward. The store's Get returns a defensive copy;
// LRange hands out the stored element slices themselves, which the store
// never mutates in place.
func Bulk(b []byte) Reply { return Reply{Kind: KindBulk, Bulk: b} }

// NilBulk builds the RESP nil bulk string reply ("$-1\r\n"), used for GET
// and LPOP/RPOP against an absent key or empty list.
func NilBulk() Reply { return Reply{Kind: KindBulk, BulkIsNil: true} }

// Array builds a RESP array reply from already-built element replies.
func Array(elems []Reply) Reply { return Reply{Kind: KindArray, Array: elems} }

// NilArray builds the RESP nil array reply ("*-1\r\n").
func NilArray() Reply { return Reply{Kind: KindArray, ArrayIsNil: true} }

// BulkArray builds an array of bulk-string replies from raw byte slices,
// the common shape for MGET, LRANGE, and SMEMBERS. A nil item becomes a nil
// bulk.
func BulkArray(items [][]byte) Reply {
	elems := make([]Reply, len(items))
	for i, it := range items {
		if it == nil {
			elems[i] = NilBulk()
		} else {
			elems[i] = Bulk(it)
		}
	}
	return Array(elems)
}

// Standard error payloads, exactly as spec.md §4.3 and §7 specify.
const (
	ErrWrongTypeText  = "WRONGTYPE Operation against a key holding the wrong kind of value"
	ErrUnknownCommand = "ERR unknown command"
)

// ProtocolErrorText builds the "ERR protocol error: <detail>" payload used
// for malformed frames.
func ProtocolErrorText(detail string) string {
	return "ERR protocol error: " + detail
}
