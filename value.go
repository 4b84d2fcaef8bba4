package fluent

import (
	"fmt"
	"strconv"
	"time"
)

// Value is a runtime value flowing through pattern resolution: a formatting
// argument, the result of a placeable expression, or the operand of a select
// expression. The set of implementations is closed; resolution relies on it.
type Value interface {
	fluentValue()
}

// String is plain text. It renders verbatim and matches select variants by
// exact key equality.
type String string

func (String) fluentValue() {}

// NoValue is the explicit absence of a value. Formatting it yields a
// placeholder and a MissingValue diagnostic, and a select expression falls
// through to its default variant.
type NoValue struct{}

func (NoValue) fluentValue() {}

// ErrorValue marks a value that could not be produced, carrying the source
// spelling of the failed reference. It renders as that spelling in braces and
// never matches a select variant. The diagnostic is recorded by whoever
// constructs the ErrorValue, not by the code that later renders it.
type ErrorValue struct {
	Ref string
}

func (ErrorValue) fluentValue() {}

// Args is the argument environment for one formatting call. Keys are variable
// names as they appear in patterns, without the "$" sigil.
type Args map[string]Value

// NewArgs converts a plain map through ValueOf. It is a convenience for
// callers holding dynamic data, typically decoded requests.
func NewArgs(m map[string]any) Args {
	if m == nil {
		return nil
	}
	args := make(Args, len(m))
	for k, v := range m {
		args[k] = ValueOf(v)
	}
	return args
}

// Int wraps an integer as a Number with default formatting options.
func Int(n int) Number {
	return Number{Value: float64(n)}
}

// Float wraps a float as a Number with default formatting options.
func Float(f float64) Number {
	return Number{Value: f}
}

// Date wraps a time as a Time with default formatting options.
func Date(t time.Time) Time {
	return Time{Value: t}
}

// Ptr returns a pointer to v. It keeps option literals with optional digit
// fields readable, e.g. MaximumFractionDigits: fluent.Ptr(2).
func Ptr[T any](v T) *T {
	return &v
}

// ValueOf converts an arbitrary Go value to a Value. Values pass through
// unchanged, numeric types become Number, time.Time becomes Time, nil becomes
// NoValue, and everything else is stringified, preferring fmt.Stringer.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case Value:
		return v
	case nil:
		return NoValue{}
	case string:
		return String(v)
	case bool:
		return String(strconv.FormatBool(v))
	case int:
		return Number{Value: float64(v)}
	case int8:
		return Number{Value: float64(v)}
	case int16:
		return Number{Value: float64(v)}
	case int32:
		return Number{Value: float64(v)}
	case int64:
		return Number{Value: float64(v)}
	case uint:
		return Number{Value: float64(v)}
	case uint8:
		return Number{Value: float64(v)}
	case uint16:
		return Number{Value: float64(v)}
	case uint32:
		return Number{Value: float64(v)}
	case uint64:
		return Number{Value: float64(v)}
	case float32:
		return Number{Value: float64(v)}
	case float64:
		return Number{Value: v}
	case time.Time:
		return Time{Value: v}
	case fmt.Stringer:
		return String(v.String())
	default:
		return String(fmt.Sprintf("%v", v))
	}
}
