package rdbc

import (
	"testing"

	"github.com/relaydb/rdbc/internal/testutil"
)

func TestValueMapPreservesInsertionOrder(t *testing.T) {
	keys := []Value{NewString("z"), NewString("a"), NewString("m")}
	vals := []Value{NewI64(1), NewI64(2), NewI64(3)}
	m := NewMap(keys, vals)

	gotKeys, gotVals, ok := m.Map()
	if !ok {
		t.Fatal("Map() ok = false")
	}
	if diff := testutil.Diff(gotKeys, keys); diff != "" {
		t.Error(diff)
	}
	if diff := testutil.Diff(gotVals, vals); diff != "" {
		t.Error(diff)
	}
}

func TestValueExtRoundTrip(t *testing.T) {
	v := NewExt("Uuid", NewString("9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"))
	tag, inner, ok := v.Ext()
	if !ok {
		t.Fatal("Ext() ok = false")
	}
	if tag != "Uuid" {
		t.Errorf("tag = %q, want Uuid", tag)
	}
	s, ok := inner.String()
	if !ok || s != "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d" {
		t.Errorf("inner = %q, ok=%v", s, ok)
	}
}

func TestValueBinaryAndStringAreDistinct(t *testing.T) {
	s := NewString("hello")
	b := NewBinary([]byte("hello"))
	if s.Kind() == b.Kind() {
		t.Fatal("String and Binary must have distinct Kinds even for identical bytes")
	}
}

func TestValueDisplay(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null(), "NULL"},
		{NewBool(true), "true"},
		{NewI64(-7), "-7"},
		{NewU64(7), "7"},
		{NewString("hi"), "hi"},
		{NewArray([]Value{NewI64(1), NewI64(2)}), "[1, 2]"},
	}
	for _, tt := range tests {
		if got := tt.v.Display(); got != tt.want {
			t.Errorf("Display() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsJSONString(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"null", true},
		{`{"a":1}`, true},
		{"[1,2]", true},
		{"hello", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsJSONString(tt.s); got != tt.want {
			t.Errorf("IsJSONString(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestAsI64Widening(t *testing.T) {
	tests := []Value{NewI32(5), NewI64(5), NewU32(5), NewU64(5)}
	for _, v := range tests {
		n, ok := v.AsI64()
		if !ok || n != 5 {
			t.Errorf("AsI64() = %d, %v; want 5, true", n, ok)
		}
	}
}
