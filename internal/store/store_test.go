package store

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestGetSetRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		val  []byte
	}{
		{"simple value", []byte("bar")},
		{"empty value", []byte{}},
		{"contains CR LF NUL", []byte("a\r\nb\x00c")},
		{"binary", []byte{0xff, 0x00, 0x10, 0xde, 0xad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(4)
			s.Set("k", tt.val)
			got, err := s.Get("k")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !bytes.Equal(got, tt.val) && !(len(got) == 0 && len(tt.val) == 0) {
				t.Errorf("Get returned %q, want %q", got, tt.val)
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	s := New(4)
	v, err := s.Get("absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil for missing key, got %q", v)
	}
}

func TestWrongType(t *testing.T) {
	s := New(4)
	s.Set("k", []byte("v"))

	if _, err := s.LPush("k", []byte("x")); !errors.Is(err, ErrWrongType) {
		t.Fatalf("LPush against string key: expected ErrWrongType, got %v", err)
	}
	if _, err := s.SAdd("k", []byte("x")); !errors.Is(err, ErrWrongType) {
		t.Fatalf("SAdd against string key: expected ErrWrongType, got %v", err)
	}

	// value must be unchanged
	got, err := s.Get("k")
	if err != nil || string(got) != "v" {
		t.Fatalf("value changed after wrong-type write: got %q, err %v", got, err)
	}
}

func TestLPushOrder(t *testing.T) {
	s := New(4)
	n, err := s.LPush("my", []byte("a"), []byte("b"), []byte("c"))
	if err != nil {
		t.Fatalf("LPush: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected length 3, got %d", n)
	}
	got, err := s.LRange("my", 0, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	want := [][]byte{[]byte("c"), []byte("b"), []byte("a")}
	assertByteSlices(t, got, want)
}

func TestRPushOrder(t *testing.T) {
	s := New(4)
	if _, err := s.RPush("my", []byte("a"), []byte("b"), []byte("c")); err != nil {
		t.Fatalf("RPush: %v", err)
	}
	got, err := s.LRange("my", 0, -1)
	if err != nil {
		t.Fatalf("LRange: %v", err)
	}
	assertByteSlices(t, got, [][]byte{[]byte("a"), []byte("b"), []byte("c")})
}

func TestLRangeClamping(t *testing.T) {
	s := New(4)
	for i := 0; i < 5; i++ {
		if _, err := s.RPush("l", []byte(fmt.Sprint(i))); err != nil {
			t.Fatalf("RPush: %v", err)
		}
	}

	tests := []struct {
		start, stop int64
		wantLen     int
	}{
		{0, -1, 5},
		{0, 100, 5},
		{-100, -1, 5},
		{10, 20, 0},
		{3, 1, 0},
		{-1, -1, 1},
		{2, 2, 1},
	}
	for _, tt := range tests {
		got, err := s.LRange("l", tt.start, tt.stop)
		if err != nil {
			t.Fatalf("LRange(%d,%d): %v", tt.start, tt.stop, err)
		}
		if len(got) != tt.wantLen {
			t.Errorf("LRange(%d,%d) = %d elements, want %d", tt.start, tt.stop, len(got), tt.wantLen)
		}
	}
}

func TestLPopRPop(t *testing.T) {
	s := New(4)
	if v, err := s.LPop("nope"); err != nil || v != nil {
		t.Fatalf("LPop on absent key: got (%q, %v)", v, err)
	}

	if _, err := s.RPush("l", []byte("a"), []byte("b")); err != nil {
		t.Fatalf("RPush: %v", err)
	}
	v, err := s.LPop("l")
	if err != nil || string(v) != "a" {
		t.Fatalf("LPop = (%q, %v), want (a, nil)", v, err)
	}
	v, err = s.RPop("l")
	if err != nil || string(v) != "b" {
		t.Fatalf("RPop = (%q, %v), want (b, nil)", v, err)
	}
	v, err = s.RPop("l")
	if err != nil || v != nil {
		t.Fatalf("RPop on drained list = (%q, %v), want (nil, nil)", v, err)
	}
}

func TestSAddIdempotence(t *testing.T) {
	s := New(4)
	n, err := s.SAdd("s", []byte("x"))
	if err != nil || n != 1 {
		t.Fatalf("first SAdd = (%d, %v), want (1, nil)", n, err)
	}
	n, err = s.SAdd("s", []byte("x"))
	if err != nil || n != 0 {
		t.Fatalf("second SAdd = (%d, %v), want (0, nil)", n, err)
	}
	card, err := s.SCard("s")
	if err != nil || card != 1 {
		t.Fatalf("SCard = (%d, %v), want (1, nil)", card, err)
	}
}

func TestMGetTotality(t *testing.T) {
	s := New(4)
	s.Set("a", []byte("1"))
	if _, err := s.LPush("b", []byte("x")); err != nil {
		t.Fatalf("LPush: %v", err)
	}

	got := s.MGet("a", "b", "c")
	if len(got) != 3 {
		t.Fatalf("MGet returned %d elements, want 3", len(got))
	}
	if string(got[0]) != "1" {
		t.Errorf("MGet[0] = %q, want 1", got[0])
	}
	if got[1] != nil {
		t.Errorf("MGet[1] (wrong type key) = %q, want nil", got[1])
	}
	if got[2] != nil {
		t.Errorf("MGet[2] (absent key) = %q, want nil", got[2])
	}
}

func TestMSetIndependentRouting(t *testing.T) {
	s := New(4)
	s.MSet(KV{Key: "a", Value: []byte("1")}, KV{Key: "b", Value: []byte("2")})
	a, _ := s.Get("a")
	b, _ := s.Get("b")
	if string(a) != "1" || string(b) != "2" {
		t.Fatalf("MSet did not apply both pairs: a=%q b=%q", a, b)
	}
}

func TestDelRoutesEachKeyIndependently(t *testing.T) {
	s := New(4)
	s.Set("a", []byte("1"))
	if _, err := s.LPush("b", []byte("x")); err != nil {
		t.Fatalf("LPush: %v", err)
	}
	n := s.Del("a", "b", "absent")
	if n != 2 {
		t.Fatalf("Del deleted %d keys, want 2", n)
	}
	if s.Exists("a", "b") != 0 {
		t.Fatalf("keys still present after Del")
	}
}

func TestExistsAndTypeName(t *testing.T) {
	s := New(4)
	s.Set("str", []byte("v"))
	if _, err := s.LPush("list", []byte("x")); err != nil {
		t.Fatalf("LPush: %v", err)
	}

	if got := s.TypeName("str"); got != "string" {
		t.Errorf("TypeName(str) = %q, want string", got)
	}
	if got := s.TypeName("list"); got != "list" {
		t.Errorf("TypeName(list) = %q, want list", got)
	}
	if got := s.TypeName("absent"); got != "none" {
		t.Errorf("TypeName(absent) = %q, want none", got)
	}
	if n := s.Exists("str", "list", "absent"); n != 2 {
		t.Errorf("Exists = %d, want 2", n)
	}
}

func TestConcurrentLPush(t *testing.T) {
	s := New(8)
	const clients = 20
	const pushesPerClient = 50

	var wg sync.WaitGroup
	wg.Add(clients)
	for i := 0; i < clients; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < pushesPerClient; j++ {
				if _, err := s.LPush("shared", []byte("v")); err != nil {
					t.Errorf("LPush: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	n, err := s.LLen("shared")
	if err != nil {
		t.Fatalf("LLen: %v", err)
	}
	if n != clients*pushesPerClient {
		t.Errorf("LLen = %d, want %d", n, clients*pushesPerClient)
	}
}

func TestStatsAggregatesShards(t *testing.T) {
	s := New(4)
	for i := 0; i < 10; i++ {
		s.Set(fmt.Sprintf("k%d", i), []byte("v"))
	}
	stats := s.Stats()
	total := 0
	for _, sh := range stats.Shards {
		total += sh.Keys
	}
	if total != 10 {
		t.Errorf("Stats total keys = %d, want 10", total)
	}
}

func assertByteSlices(t *testing.T, got, want [][]byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("element %d = %q, want %q", i, got[i], want[i])
		}
	}
}
