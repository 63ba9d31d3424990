// Package rdbc is a backend-agnostic database driver core: a value model,
// an error kind, a placeholder-exchange rewrite, and the Driver/Connection/
// Row/MetaData/ConnectOptions contracts that concrete backend adapters
// implement. See the rdbc/rdbcpool, rdbc/turso and rdbc/deviation
// subpackages for the connection pool, the representative adapter, and the
// deviation governance surface.
package rdbc

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindI32
	KindI64
	KindU32
	KindU64
	KindF32
	KindF64
	KindString
	KindBinary
	KindArray
	KindMap
	KindExt
)

// Value is the host-side dynamic value exchanged between adapters and
// callers. Exactly one field group is meaningful, selected by Kind.
//
// Map preserves insertion order by construction: it is backed by parallel
// key/value slices rather than Go's native map, whose iteration order is
// randomized and would violate the deterministic-iteration invariant.
type Value struct {
	kind Kind

	boolVal   bool
	i64Val    int64
	u64Val    uint64
	f64Val    float64
	stringVal string
	binVal    []byte
	arrVal    []Value
	mapKeys   []Value
	mapVals   []Value

	extTag   string
	extInner *Value
}

// Null is the zero Value and also constructible as rdbc.Null().
func Null() Value { return Value{kind: KindNull} }

func NewBool(b bool) Value   { return Value{kind: KindBool, boolVal: b} }
func NewI32(n int32) Value   { return Value{kind: KindI32, i64Val: int64(n)} }
func NewI64(n int64) Value   { return Value{kind: KindI64, i64Val: n} }
func NewU32(n uint32) Value  { return Value{kind: KindU32, u64Val: uint64(n)} }
func NewU64(n uint64) Value  { return Value{kind: KindU64, u64Val: n} }
func NewF32(f float32) Value { return Value{kind: KindF32, f64Val: float64(f)} }
func NewF64(f float64) Value { return Value{kind: KindF64, f64Val: f} }
func NewString(s string) Value {
	return Value{kind: KindString, stringVal: s}
}
func NewBinary(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBinary, binVal: cp}
}
func NewArray(elems []Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindArray, arrVal: cp}
}

// NewMap builds an insertion-order-preserving Map from parallel key/value
// slices. The two slices must be the same length.
func NewMap(keys, vals []Value) Value {
	if len(keys) != len(vals) {
		panic("rdbc: NewMap keys/vals length mismatch")
	}
	ck := make([]Value, len(keys))
	cv := make([]Value, len(vals))
	copy(ck, keys)
	copy(cv, vals)
	return Value{kind: KindMap, mapKeys: ck, mapVals: cv}
}

// NewExt wraps inner under the given extension tag. Tags are case-sensitive
// and stable: they are part of the public wire between adapters and callers
// (examples include Decimal, Date, DateTime, Time, Timestamp, Uuid, Json,
// Bytea, hstore, tsvector, tsquery, point, ...).
func NewExt(tag string, inner Value) Value {
	innerCopy := inner
	return Value{kind: KindExt, extTag: tag, extInner: &innerCopy}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() (bool, bool)       { return v.boolVal, v.kind == KindBool }
func (v Value) I32() (int32, bool)       { return int32(v.i64Val), v.kind == KindI32 }
func (v Value) I64() (int64, bool)       { return v.i64Val, v.kind == KindI64 }
func (v Value) U32() (uint32, bool)      { return uint32(v.u64Val), v.kind == KindU32 }
func (v Value) U64() (uint64, bool)      { return v.u64Val, v.kind == KindU64 }
func (v Value) F32() (float32, bool)     { return float32(v.f64Val), v.kind == KindF32 }
func (v Value) F64() (float64, bool)     { return v.f64Val, v.kind == KindF64 }
func (v Value) String() (string, bool)   { return v.stringVal, v.kind == KindString }
func (v Value) Binary() ([]byte, bool)   { return v.binVal, v.kind == KindBinary }
func (v Value) Array() ([]Value, bool)   { return v.arrVal, v.kind == KindArray }

// Map returns the parallel key/value slices for a Map value, in insertion
// order.
func (v Value) Map() (keys []Value, vals []Value, ok bool) {
	return v.mapKeys, v.mapVals, v.kind == KindMap
}

// Ext returns the extension tag and inner value for an Ext value.
func (v Value) Ext() (tag string, inner Value, ok bool) {
	if v.kind != KindExt {
		return "", Value{}, false
	}
	return v.extTag, *v.extInner, true
}

// AsString returns the value's best-effort string form regardless of Kind:
// String/Binary(as UTF-8)/Ext(tag's inner).as_string_or_display fall
// through to Display for everything else. Used by adapters that need a
// string to bind as a parameter (e.g. Ext("Date", ...) -> TEXT).
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.stringVal
	case KindBinary:
		return string(v.binVal)
	case KindExt:
		return v.extInner.AsString()
	default:
		return v.Display()
	}
}

// AsI64 extracts an int64 from any integer-kinded Value, widening as
// needed, for adapters binding parameters that accept only one integer
// width.
func (v Value) AsI64() (int64, bool) {
	switch v.kind {
	case KindI32, KindI64:
		return v.i64Val, true
	case KindU32, KindU64:
		return int64(v.u64Val), true
	case KindExt:
		return v.extInner.AsI64()
	default:
		return 0, false
	}
}

// Display renders a human-oriented (not machine-readable) string form of
// the value, used for logging and as the Ext "best-effort native form"
// fallback.
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindI32, KindI64:
		return strconv.FormatInt(v.i64Val, 10)
	case KindU32, KindU64:
		return strconv.FormatUint(v.u64Val, 10)
	case KindF32, KindF64:
		return strconv.FormatFloat(v.f64Val, 'g', -1, 64)
	case KindString:
		return v.stringVal
	case KindBinary:
		return fmt.Sprintf("0x%x", v.binVal)
	case KindArray:
		parts := make([]string, len(v.arrVal))
		for i, e := range v.arrVal {
			parts[i] = e.Display()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.mapKeys))
		for i := range v.mapKeys {
			parts[i] = v.mapKeys[i].Display() + ": " + v.mapVals[i].Display()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindExt:
		return fmt.Sprintf("%s(%s)", v.extTag, v.extInner.Display())
	default:
		return ""
	}
}

// IsJSONString reports whether s looks like JSON (the literal "null", or
// object/array delimiters). Adapters implementing an opt-in Text-vs-JSON
// heuristic use this before attempting a JSON parse. Default behavior is to
// leave the heuristic OFF, since the literal text "null" would otherwise
// become indistinguishable from SQL NULL.
func IsJSONString(s string) bool {
	return s == "null" ||
		(strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}
