package turso

import (
	"time"

	"github.com/relaydb/rdbc"
)

// DataType names turso's five runtime value kinds, matching SQLite's own
// storage classes. column_type() at the metadata level returns these names
// rather than a declared schema type (see rdbc/deviation).
type DataType string

const (
	DataTypeNull    DataType = "NULL"
	DataTypeInteger DataType = "INTEGER"
	DataTypeReal    DataType = "REAL"
	DataTypeText    DataType = "TEXT"
	DataTypeBlob    DataType = "BLOB"
)

// DataTypeOf reports the DataType of a native scalar as returned by the
// embedded or remote backend: nil, int64, float64, string, or []byte.
func DataTypeOf(native any) DataType {
	switch native.(type) {
	case nil:
		return DataTypeNull
	case int64:
		return DataTypeInteger
	case float64:
		return DataTypeReal
	case string:
		return DataTypeText
	case []byte:
		return DataTypeBlob
	default:
		return DataTypeText
	}
}

// valueToNative converts an rdbc.Value into one of the scalar types a
// SQLite-family backend binds directly: nil, int64, float64, string, or
// []byte. Ext values are dispatched by tag first (Date/DateTime/Time/
// Decimal/Uuid as TEXT, Timestamp as an INTEGER millisecond count, Json as
// a BLOB of its raw bytes), falling back to the inner value's own kind for
// any unrecognized tag. Array and Map fall back to their JSON-text form,
// since SQLite has no native array/object column type.
func valueToNative(v rdbc.Value) (any, error) {
	switch v.Kind() {
	case rdbc.KindNull:
		return nil, nil
	case rdbc.KindBool:
		b, _ := v.Bool()
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case rdbc.KindI32, rdbc.KindI64:
		n, _ := v.AsI64()
		return n, nil
	case rdbc.KindU32, rdbc.KindU64:
		n, _ := v.AsI64()
		return n, nil
	case rdbc.KindF32, rdbc.KindF64:
		f, _ := v.F64()
		return f, nil
	case rdbc.KindString:
		s, _ := v.String()
		return s, nil
	case rdbc.KindBinary:
		b, _ := v.Binary()
		return b, nil
	case rdbc.KindArray, rdbc.KindMap:
		s, err := rdbc.EncodeJSONValue(v)
		if err != nil {
			return nil, err
		}
		return s, nil
	case rdbc.KindExt:
		return extToNative(v)
	default:
		return nil, rdbc.Errorf("turso: value of kind %d has no native binding", v.Kind())
	}
}

func extToNative(v rdbc.Value) (any, error) {
	tag, inner, _ := v.Ext()
	switch tag {
	case "Date", "DateTime", "Time", "Decimal", "Uuid":
		return inner.AsString(), nil
	case "Timestamp":
		n, ok := inner.AsI64()
		if !ok {
			return nil, rdbc.Errorf("turso: Timestamp Ext inner value is not an integer")
		}
		return n, nil
	case "Json":
		if b, ok := inner.Binary(); ok {
			return b, nil
		}
		return []byte(inner.AsString()), nil
	default:
		return valueToNative(inner)
	}
}

// nativeToValue converts a scalar returned by a SQLite-family backend back
// into an rdbc.Value. When jsonDetect is true, a TEXT value that looks like
// JSON (rdbc.IsJSONString) is opportunistically decoded into its Array/Map/
// scalar form, falling back to a plain String if decoding fails; jsonDetect
// defaults to false (per ConnectOptions.JSONDetect), since the literal text
// "null" would otherwise be indistinguishable from SQL NULL. Every other
// kind maps straight across (NULL->Null, INTEGER->I64, REAL->F64,
// BLOB->Binary).
func nativeToValue(native any, jsonDetect bool) rdbc.Value {
	switch x := native.(type) {
	case nil:
		return rdbc.Null()
	case int64:
		return rdbc.NewI64(x)
	case float64:
		return rdbc.NewF64(x)
	case bool:
		return rdbc.NewBool(x)
	case string:
		if jsonDetect && rdbc.IsJSONString(x) {
			if decoded, ok := rdbc.DecodeJSONString(x); ok {
				return decoded
			}
		}
		return rdbc.NewString(x)
	case []byte:
		return rdbc.NewBinary(x)
	case time.Time:
		return rdbc.NewDateTimeValue(x)
	default:
		return rdbc.NewString(rdbc.Errorf("turso: unrecognized native value %T", native).Error())
	}
}
