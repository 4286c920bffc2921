package resp

import "fmt"

// ProtocolError signals a frame that cannot be decoded as a RESP request
// array: a bad leading byte, a negative array count or bulk length (the
// nil bulk "$-1" included), a non-numeric count or length field, a count
// or length over MaxArrayLen or MaxBulkLen, a missing CRLF, or EOF or a
// read failure in the middle of a frame.
// The connection must be closed after a ProtocolError — the decoder does
// not attempt to resynchronize with the stream.
type ProtocolError struct {
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("resp: protocol error: %s", e.Detail)
}

func newProtocolError(format string, args ...any) *ProtocolError {
	return &ProtocolError{Detail: fmt.Sprintf(format, args...)}
}
