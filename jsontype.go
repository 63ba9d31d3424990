package rdbc

import "encoding/json"

// NewJSONValue wraps raw JSON bytes as Ext("Json", Binary). Json may be
// carried as Binary bytes or as the textual string form of any Value.
func NewJSONValue(raw []byte) Value {
	return NewExt("Json", NewBinary(raw))
}

// JSONBytesFromValue extracts the raw JSON bytes from an Ext("Json", ...)
// value, accepting either the Binary or String inner form.
func JSONBytesFromValue(v Value) ([]byte, error) {
	tag, inner, ok := v.Ext()
	if !ok || tag != "Json" {
		return nil, Errorf("value is not an Ext(\"Json\", ...)")
	}
	if b, ok := inner.Binary(); ok {
		return b, nil
	}
	if s, ok := inner.String(); ok {
		return []byte(s), nil
	}
	return nil, Errorf("Json inner value is neither Binary nor String")
}

// EncodeJSONValue renders v as a JSON text string: Array becomes a JSON
// array, Map a JSON object (keys coerced to strings via Display, since JSON
// object keys are always textual), and every other Kind its natural JSON
// scalar. Adapters use this to serialize Array/Map parameters into the TEXT
// form a backend without a native structured type accepts (spec: "Array |
// Map <-> TEXT serialized as JSON").
func EncodeJSONValue(v Value) (string, error) {
	b, err := json.Marshal(valueToAny(v))
	if err != nil {
		return "", WrapError(err, "encoding value as JSON")
	}
	return string(b), nil
}

func valueToAny(v Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		b, _ := v.Bool()
		return b
	case KindI32, KindI64:
		n, _ := v.AsI64()
		return n
	case KindU32, KindU64:
		n, _ := v.U64()
		return n
	case KindF32, KindF64:
		f, _ := v.F64()
		return f
	case KindString:
		s, _ := v.String()
		return s
	case KindBinary:
		b, _ := v.Binary()
		return b
	case KindArray:
		elems, _ := v.Array()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = valueToAny(e)
		}
		return out
	case KindMap:
		keys, vals, _ := v.Map()
		out := make(map[string]any, len(keys))
		for i, k := range keys {
			out[k.Display()] = valueToAny(vals[i])
		}
		return out
	case KindExt:
		_, inner, _ := v.Ext()
		return valueToAny(inner)
	default:
		return nil
	}
}

// DecodeJSONString attempts to parse s as JSON and convert the result into
// a Value tree (object -> Map, array -> Array, string/number/bool/null ->
// the matching scalar Kind). It backs an opt-in Text-vs-JSON heuristic;
// callers gate its use behind that option, since it is not safe to apply
// unconditionally (the literal text "null" would become indistinguishable
// from SQL NULL).
func DecodeJSONString(s string) (Value, bool) {
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return Value{}, false
	}
	return anyToValue(raw), true
}

func anyToValue(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case bool:
		return NewBool(x)
	case float64:
		return NewF64(x)
	case string:
		return NewString(x)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = anyToValue(e)
		}
		return NewArray(elems)
	case map[string]any:
		// encoding/json loses source key order on unmarshal into a Go map,
		// so a JSON-decoded Map's key order is unspecified (unlike a Map
		// built directly by an adapter from column order, which is not
		// affected by this).
		keys := make([]Value, 0, len(x))
		vals := make([]Value, 0, len(x))
		for k, v := range x {
			keys = append(keys, NewString(k))
			vals = append(vals, anyToValue(v))
		}
		return NewMap(keys, vals)
	default:
		return Null()
	}
}
