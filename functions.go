package fluent

import "time"

// Function is a custom formatting function callable from patterns. Positional
// arguments arrive in declaration order and named arguments by name; both are
// fully resolved values. Implementations must be pure and safe for concurrent
// use, must not panic, and report failure by returning an ErrorValue.
type Function func(positional []Value, named Args) Value

// builtinNumber implements NUMBER. It reformats its Number argument with the
// call's named options layered over the options the value already carries.
func builtinNumber(positional []Value, named Args) Value {
	if len(positional) == 0 {
		return ErrorValue{Ref: "NUMBER()"}
	}
	n, ok := positional[0].(Number)
	if !ok {
		return ErrorValue{Ref: "NUMBER()"}
	}
	n.Options.mergeArgs(named)
	return n
}

// builtinDatetime implements DATETIME. A Time argument is reformatted with
// the call's named options; a Number argument is taken as Unix milliseconds
// in UTC.
func builtinDatetime(positional []Value, named Args) Value {
	if len(positional) == 0 {
		return ErrorValue{Ref: "DATETIME()"}
	}
	var t Time
	switch v := positional[0].(type) {
	case Time:
		t = v
	case Number:
		t = Time{Value: time.UnixMilli(int64(v.Value)).UTC()}
	default:
		return ErrorValue{Ref: "DATETIME()"}
	}
	t.Options.mergeArgs(named)
	return t
}

func isValidFunctionName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_' || c == '-'):
		default:
			return false
		}
	}
	return true
}

func isValidIdentifier(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_' || c == '-'):
		default:
			return false
		}
	}
	return true
}
