package resp

import (
	"bytes"
	"testing"
)

func encode(t *testing.T, replies ...Reply) []byte {
	t.Helper()
	e := NewEncoder()
	for _, r := range replies {
		e.Put(r)
	}
	var buf bytes.Buffer
	if _, err := e.Flush(&buf); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeSimple(t *testing.T) {
	got := encode(t, Simple("OK"))
	want := "+OK\r\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeError(t *testing.T) {
	got := encode(t, Err(ErrWrongTypeText))
	want := "-" + ErrWrongTypeText + "\r\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeInteger(t *testing.T) {
	got := encode(t, Integer(42))
	if string(got) != ":42\r\n" {
		t.Errorf("got %q, want :42\\r\\n", got)
	}
	got = encode(t, Integer(-7))
	if string(got) != ":-7\r\n" {
		t.Errorf("got %q, want :-7\\r\\n", got)
	}
}

func TestEncodeBulk(t *testing.T) {
	got := encode(t, Bulk([]byte("bar")))
	want := "$3\r\nbar\r\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeBulkBinarySafe(t *testing.T) {
	payload := []byte("a\r\nb\x00c")
	got := encode(t, Bulk(payload))
	want := "$6\r\na\r\nb\x00c\r\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeNilBulk(t *testing.T) {
	got := encode(t, NilBulk())
	if string(got) != "$-1\r\n" {
		t.Errorf("got %q, want $-1\\r\\n", got)
	}
}

func TestEncodeNilArray(t *testing.T) {
	got := encode(t, NilArray())
	if string(got) != "*-1\r\n" {
		t.Errorf("got %q, want *-1\\r\\n", got)
	}
}

func TestEncodeArrayOfBulk(t *testing.T) {
	got := encode(t, BulkArray([][]byte{[]byte("a"), nil, []byte("bb")}))
	want := "*3\r\n$1\r\na\r\n$-1\r\n$2\r\nbb\r\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeEmptyArray(t *testing.T) {
	got := encode(t, Array(nil))
	if string(got) != "*0\r\n" {
		t.Errorf("got %q, want *0\\r\\n", got)
	}
}

func TestEncodeNestedArray(t *testing.T) {
	inner := Array([]Reply{Integer(1), Integer(2)})
	got := encode(t, Array([]Reply{inner, Simple("OK")}))
	want := "*2\r\n*2\r\n:1\r\n:2\r\n+OK\r\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeMultipleRepliesPipelined(t *testing.T) {
	got := encode(t, Simple("PONG"), Integer(1), NilBulk())
	want := "+PONG\r\n:1\r\n$-1\r\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
