package command

import (
	"errors"
	"strconv"

	"github.com/dreamware/kvresp/internal/resp"
	"github.com/dreamware/kvresp/internal/store"
)

// cloneArg copies a decoded bulk before it is retained past the request
// that produced it, so a command record never aliases the slice the
// decoder returned for that request.
func cloneArg(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func toStrings(args [][]byte) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = string(a)
	}
	return out
}

func parseInt64(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

// wrongTypeOrErr converts a store-level error into its reply, per spec.md
// §4.6 step 4: a type mismatch becomes the standard WRONGTYPE reply. No
// other store error currently exists, but any future one still surfaces as
// a generic error reply rather than panicking or closing the connection.
func wrongTypeOrErr(err error) resp.Reply {
	if errors.Is(err, store.ErrWrongType) {
		return resp.Err(resp.ErrWrongTypeText)
	}
	return resp.Err("ERR " + err.Error())
}
