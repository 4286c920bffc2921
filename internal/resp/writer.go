package resp

import (
	"io"
	"net"
	"strconv"
)

// CRLF is the RESP line terminator.
var crlf = []byte("\r\n")

// Encoder accumulates one or more replies as a single net.Buffers gather
// list. A Bulk reply's payload slice is queued as its own segment for a
// vectored write rather than copied into an intermediate buffer; its header
// and trailer are separate small segments, matching rsms-ent's
// resp-write.go split between "append small framing bytes" and "queue the
// payload slice directly". Simple, Error and Integer replies are not split
// this way: each is formatted, prefix and CRLF included, into one newly
// allocated segment.
type Encoder struct {
	bufs net.Buffers
}

// NewEncoder returns an empty Encoder ready to accumulate replies.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Put appends r's wire encoding to the gather list. Arrays recurse into
// their elements without ever materializing a combined byte slice for the
// whole reply.
func (e *Encoder) Put(r Reply) {
	switch r.Kind {
	case KindSimple:
		e.bufs = append(e.bufs, []byte("+"+r.Text+"\r\n"))
	case KindError:
		e.bufs = append(e.bufs, []byte("-"+r.Text+"\r\n"))
	case KindInteger:
		e.bufs = append(e.bufs, []byte(":"+strconv.FormatInt(r.Int, 10)+"\r\n"))
	case KindBulk:
		e.putBulk(r)
	case KindArray:
		e.putArray(r)
	}
}

func (e *Encoder) putBulk(r Reply) {
	if r.BulkIsNil {
		e.bufs = append(e.bufs, []byte("$-1\r\n"))
		return
	}
	header := append([]byte("$"+strconv.Itoa(len(r.Bulk))), crlf...)
	e.bufs = append(e.bufs, header, r.Bulk, crlf)
}

func (e *Encoder) putArray(r Reply) {
	if r.ArrayIsNil {
		e.bufs = append(e.bufs, []byte("*-1\r\n"))
		return
	}
	header := append([]byte("*"+strconv.Itoa(len(r.Array))), crlf...)
	e.bufs = append(e.bufs, header)
	for _, elem := range r.Array {
		e.Put(elem)
	}
}

// Flush writes every queued reply to w as a single vectored write where the
// underlying writer supports it (net.Buffers.WriteTo uses writev when w is
// a net.Conn backed by a file descriptor), then resets the Encoder for
// reuse. Partial writes leave the unwritten tail in bufs per
// net.Buffers.WriteTo's own contract, so callers that need to retry after a
// partial failure can call Flush again.
func (e *Encoder) Flush(w io.Writer) (int64, error) {
	n, err := e.bufs.WriteTo(w)
	if err == nil {
		e.bufs = nil
	}
	return n, err
}

// Reset discards any queued replies without writing them.
func (e *Encoder) Reset() {
	e.bufs = nil
}
