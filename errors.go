package fluent

import (
	"errors"
	"fmt"
)

var (
	ErrUndefinedLocale     = errors.New("fluent: locale cannot be the undefined tag")
	ErrNilResource         = errors.New("fluent: resource cannot be nil")
	ErrNilFunction         = errors.New("fluent: function cannot be nil")
	ErrNilPluralRule       = errors.New("fluent: plural rule cannot be nil")
	ErrInvalidFunctionName = errors.New("fluent: function names must match [A-Z][A-Z0-9_-]*")
	ErrInvalidIdentifier   = errors.New("fluent: invalid identifier")
	ErrEmptyEntry          = errors.New("fluent: entry needs a value or at least one attribute")
	ErrNoTermValue         = errors.New("fluent: term needs a value")
	ErrNoDefaultVariant    = errors.New("fluent: select expression has no default variant")
	ErrManyDefaultVariants = errors.New("fluent: select expression has more than one default variant")
	ErrNestingTooDeep      = errors.New("fluent: expression nesting too deep")
	ErrInvalidResource     = errors.New("fluent: invalid resource document")
)

// ErrorKind classifies a resolution diagnostic.
type ErrorKind uint8

const (
	// UnknownReference marks a message, term, or attribute that is not
	// registered on the bundle.
	UnknownReference ErrorKind = iota + 1
	// MissingValue marks a variable with no value in the argument
	// environment, or an explicit absent argument.
	MissingValue
	// NoMessageValue marks a reference to a message that has attributes but
	// no value pattern.
	NoMessageValue
	// UnknownFunction marks a call to a function name that was never
	// registered.
	UnknownFunction
	// Cyclic marks a reference that is already being resolved higher up
	// the same call.
	Cyclic
	// DepthExceeded marks a reference nested beyond the resolution depth
	// bound.
	DepthExceeded
	// TooManyPlaceables marks a format call that spent its whole placeable
	// budget, typically on a fan-out bomb.
	TooManyPlaceables
	// MissingDefault marks a select expression without a default variant.
	// Registration validates this, so it is only reachable through raw
	// patterns handed directly to FormatPattern.
	MissingDefault
)

// String returns the kind's name for logs and test output.
func (k ErrorKind) String() string {
	switch k {
	case UnknownReference:
		return "unknown-reference"
	case MissingValue:
		return "missing-value"
	case NoMessageValue:
		return "no-message-value"
	case UnknownFunction:
		return "unknown-function"
	case Cyclic:
		return "cyclic"
	case DepthExceeded:
		return "depth-exceeded"
	case TooManyPlaceables:
		return "too-many-placeables"
	case MissingDefault:
		return "missing-default"
	default:
		return "unknown"
	}
}

// ResolveError is a non-fatal diagnostic recorded while resolving a pattern.
// Ref holds the reference in its source spelling ("$name", "msg.attr",
// "-term", "NUMBER()"), which is also the text of the placeholder substituted
// into the output.
type ResolveError struct {
	Ref  string
	Kind ErrorKind
}

func (e *ResolveError) Error() string {
	switch e.Kind {
	case UnknownReference:
		return "fluent: unknown reference: " + e.Ref
	case MissingValue:
		return "fluent: no value provided: " + e.Ref
	case NoMessageValue:
		return "fluent: message has no value: " + e.Ref
	case UnknownFunction:
		return "fluent: unknown function: " + e.Ref
	case Cyclic:
		return "fluent: cyclic reference: " + e.Ref
	case DepthExceeded:
		return "fluent: resolution depth exceeded: " + e.Ref
	case TooManyPlaceables:
		return "fluent: too many placeables"
	case MissingDefault:
		return "fluent: select expression has no default variant"
	default:
		return "fluent: resolution error: " + e.Ref
	}
}

// OverrideError reports an attempt to register a message, term, or function
// under an id that is already taken. The first registration always wins.
type OverrideError struct {
	Kind string // "message", "term", or "function"
	ID   string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("fluent: %s %q is already registered", e.Kind, e.ID)
}

// ResourceError reports an entry rejected by registration-time validation.
type ResourceError struct {
	ID  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("fluent: invalid entry %q: %v", e.ID, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
