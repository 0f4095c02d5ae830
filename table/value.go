package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
	KindBool
	KindTimestamp
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single table cell. The zero Value is Null.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	ts   time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Timestamp returns a timestamp value.
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, ts: t} }

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsText returns the text held by v.
func (v Value) AsText() (string, bool) { return v.str, v.kind == KindText }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsTimestamp returns the timestamp held by v.
func (v Value) AsTimestamp() (time.Time, bool) { return v.ts, v.kind == KindTimestamp }

// Equal reports variant-and-value equality. Values of different kinds are
// never equal; two Nulls are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindNumber:
		return v.num == o.num
	case KindText:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindTimestamp:
		return v.ts.Equal(o.ts)
	}
	return false
}

// Compare orders a against b and returns -1, 0 or 1. Null is smaller than
// every non-null value. Comparing two non-null values of different kinds
// returns an error wrapping ErrTypeMismatch.
func Compare(a, b Value) (int, error) {
	if a.kind == KindNull || b.kind == KindNull {
		switch {
		case a.kind == b.kind:
			return 0, nil
		case a.kind == KindNull:
			return -1, nil
		default:
			return 1, nil
		}
	}

	if a.kind != b.kind {
		return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrTypeMismatch, a.kind, b.kind)
	}

	switch a.kind {
	case KindNumber:
		return compareOrdered(a.num, b.num), nil
	case KindText:
		return strings.Compare(a.str, b.str), nil
	case KindBool:
		switch {
		case a.b == b.b:
			return 0, nil
		case !a.b:
			return -1, nil
		default:
			return 1, nil
		}
	case KindTimestamp:
		return a.ts.Compare(b.ts), nil
	}
	return 0, fmt.Errorf("%w: unknown kind %s", ErrTypeMismatch, a.kind)
}

func compareOrdered(a, b float64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Numeric coerces v to a float64 for running aggregates. Null counts as
// zero, booleans as 1 or 0 and text is parsed. Text spelling NaN or an
// infinity is rejected like any other non-number. Anything else fails with
// ErrNumericConversion.
func (v Value) Numeric() (float64, error) {
	switch v.kind {
	case KindNull:
		return 0, nil
	case KindNumber:
		return v.num, nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: text %q is not a number", ErrNumericConversion, v.str)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s value is not a number", ErrNumericConversion, v.kind)
	}
}

// String renders v as text. It is the rendering used for partition keys
// and pivot column names.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindNumber:
		return formatNumber(v.num)
	case KindText:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTimestamp:
		return v.ts.Format(time.RFC3339Nano)
	}
	return ""
}

func formatNumber(f float64) string {
	if math.IsInf(f, 1) {
		return "+Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Any converts v back to a plain Go value: nil, float64, string, bool or
// time.Time.
func (v Value) Any() interface{} {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return v.str
	case KindBool:
		return v.b
	case KindTimestamp:
		return v.ts
	}
	return nil
}

// FromAny converts a Go value produced by a reader or a caller into a
// Value. Integers and floats become numbers, byte slices become text and
// pointers are dereferenced. Unrecognised types are rendered with %v.
func FromAny(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int8:
		return Number(float64(val))
	case int16:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case uint:
		return Number(float64(val))
	case uint8:
		return Number(float64(val))
	case uint16:
		return Number(float64(val))
	case uint32:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	case string:
		return Text(val)
	case []byte:
		return Text(string(val))
	case bool:
		return Bool(val)
	case time.Time:
		return Timestamp(val)
	case *time.Time:
		if val == nil {
			return Null()
		}
		return Timestamp(*val)
	case *string:
		if val == nil {
			return Null()
		}
		return Text(*val)
	case *float64:
		if val == nil {
			return Null()
		}
		return Number(*val)
	case *int64:
		if val == nil {
			return Null()
		}
		return Number(float64(*val))
	case *int32:
		if val == nil {
			return Null()
		}
		return Number(float64(*val))
	case *bool:
		if val == nil {
			return Null()
		}
		return Bool(*val)
	case fmt.Stringer:
		return Text(val.String())
	default:
		return Text(fmt.Sprintf("%v", val))
	}
}
