package table

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is an absent value.
	KindNull Kind = iota
	// KindString is text.
	KindString
	// KindNumber is a float64, possibly non-finite.
	KindNumber
	// KindBool is a boolean.
	KindBool
	// KindDate is a point in time.
	KindDate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DateLayout is the ISO-8601 form used when dates are rendered as text.
const DateLayout = "2006-01-02T15:04:05.000Z"

// Value is a resolved cell value. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// StringValue returns a text value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue returns a numeric value.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// DateValue returns a date value.
func DateValue(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsEmpty reports whether v renders as an absent cell: null or "".
func (v Value) IsEmpty() bool {
	return v.kind == KindNull || (v.kind == KindString && v.str == "")
}

// IsFiniteNumber reports whether v is a number other than NaN or ±Inf.
func (v Value) IsFiniteNumber() bool {
	return v.kind == KindNumber && !math.IsNaN(v.num) && !math.IsInf(v.num, 0)
}

// Float returns the numeric payload, or 0 for other kinds.
func (v Value) Float() float64 { return v.num }

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Time returns the date payload, or the zero time for other kinds.
func (v Value) Time() time.Time { return v.t }

// Text renders v as cell text.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.t.UTC().Format(DateLayout)
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }

// FormatNumber renders f in shortest round-trip form. Non-finite values
// render as NaN, Infinity and -Infinity.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Exponent without zero padding: 1e+21, 1.5e-7.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// ValueOf converts an arbitrary Go value into a Value.
func ValueOf(x any) Value {
	switch v := x.(type) {
	case nil:
		return NullValue()
	case Value:
		return v
	case string:
		return StringValue(v)
	case []byte:
		return StringValue(string(v))
	case bool:
		return BoolValue(v)
	case float64:
		return NumberValue(v)
	case float32:
		return NumberValue(float64(v))
	case int:
		return NumberValue(float64(v))
	case int8:
		return NumberValue(float64(v))
	case int16:
		return NumberValue(float64(v))
	case int32:
		return NumberValue(float64(v))
	case int64:
		return NumberValue(float64(v))
	case uint:
		return NumberValue(float64(v))
	case uint8:
		return NumberValue(float64(v))
	case uint16:
		return NumberValue(float64(v))
	case uint32:
		return NumberValue(float64(v))
	case uint64:
		return NumberValue(float64(v))
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return NumberValue(f)
		}
		return StringValue(v.String())
	case time.Time:
		return DateValue(v)
	case *time.Time:
		if v == nil {
			return NullValue()
		}
		return DateValue(*v)
	case fmt.Stringer:
		return StringValue(v.String())
	case error:
		return StringValue(v.Error())
	}

	return reflectValue(reflect.ValueOf(x))
}

// reflectValue handles named types, pointers and composite values.
func reflectValue(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return NullValue()
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.String:
		return StringValue(rv.String())
	case reflect.Bool:
		return BoolValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberValue(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NumberValue(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return NumberValue(rv.Float())
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return NullValue()
		}
		return jsonText(rv.Interface())
	case reflect.Array, reflect.Struct:
		return jsonText(rv.Interface())
	default:
		return StringValue(fmt.Sprint(rv.Interface()))
	}
}

// jsonText stringifies nested values. Values that cannot be encoded fall
// back to their fmt representation.
func jsonText(x any) Value {
	data, err := json.Marshal(x)
	if err != nil {
		return StringValue(fmt.Sprint(x))
	}
	return StringValue(string(data))
}
