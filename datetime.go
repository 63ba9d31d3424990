package rdbc

import (
	"time"

	"github.com/golang-sql/civil"
)

// maxNanosecondYear is the year in which an int64 nanosecond count since
// the UNIX epoch overflows (April 2262). Dates at or beyond this year fall
// back to second precision rather than failing.
const maxNanosecondYear = 2262

// NewDateValue wraps a civil.Date as Ext("Date", String), using civil's
// canonical "2006-01-02" display form.
func NewDateValue(d civil.Date) Value {
	return NewExt("Date", NewString(d.String()))
}

// DateFromValue parses an Ext("Date", String) value back into a civil.Date.
func DateFromValue(v Value) (civil.Date, error) {
	tag, inner, ok := v.Ext()
	if !ok || tag != "Date" {
		return civil.Date{}, Errorf("value is not an Ext(\"Date\", ...)")
	}
	s, ok := inner.String()
	if !ok {
		return civil.Date{}, Errorf("Date inner value is not a String")
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, WrapError(err, "parsing date")
	}
	return d, nil
}

// NewTimeValue wraps a civil.Time as Ext("Time", String).
func NewTimeValue(t civil.Time) Value {
	return NewExt("Time", NewString(t.String()))
}

func TimeFromValue(v Value) (civil.Time, error) {
	tag, inner, ok := v.Ext()
	if !ok || tag != "Time" {
		return civil.Time{}, Errorf("value is not an Ext(\"Time\", ...)")
	}
	s, ok := inner.String()
	if !ok {
		return civil.Time{}, Errorf("Time inner value is not a String")
	}
	t, err := civil.ParseTime(s)
	if err != nil {
		return civil.Time{}, WrapError(err, "parsing time")
	}
	return t, nil
}

// NewDateTimeValue wraps a time.Time as Ext("DateTime", String), preserving
// its offset across the round trip by formatting with RFC3339Nano. Years at
// or beyond maxNanosecondYear fall back to second precision, since an int64
// nanosecond count can no longer represent them exactly.
func NewDateTimeValue(t time.Time) Value {
	if t.Year() >= maxNanosecondYear {
		return NewExt("DateTime", NewString(t.Format(time.RFC3339)))
	}
	return NewExt("DateTime", NewString(t.Format(time.RFC3339Nano)))
}

func DateTimeFromValue(v Value) (time.Time, error) {
	tag, inner, ok := v.Ext()
	if !ok || tag != "DateTime" {
		return time.Time{}, Errorf("value is not an Ext(\"DateTime\", ...)")
	}
	s, ok := inner.String()
	if !ok {
		return time.Time{}, Errorf("DateTime inner value is not a String")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, WrapError(err, "parsing datetime")
	}
	return t, nil
}

// Timestamp is a signed millisecond count since the UNIX epoch, the wire
// form behind Ext("Timestamp", I64).
type Timestamp int64

// NewTimestampValue wraps a Timestamp as Ext("Timestamp", I64).
func NewTimestampValue(ts Timestamp) Value {
	return NewExt("Timestamp", NewI64(int64(ts)))
}

// TimestampFromValue parses an Ext("Timestamp", I64) value.
func TimestampFromValue(v Value) (Timestamp, error) {
	tag, inner, ok := v.Ext()
	if !ok || tag != "Timestamp" {
		return 0, Errorf("value is not an Ext(\"Timestamp\", ...)")
	}
	n, ok := inner.AsI64()
	if !ok {
		return 0, Errorf("Timestamp inner value is not an integer")
	}
	return Timestamp(n), nil
}

// Time converts a Timestamp to a time.Time in UTC.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts)).UTC()
}

// TimestampFromTime converts a time.Time to a millisecond-precision
// Timestamp.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}
