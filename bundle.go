package fluent

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/ast"
)

// Bundle holds the messages, terms, and functions of one locale and resolves
// patterns against them. Populate it during construction and startup; after
// that it is immutable and safe for concurrent use.
type Bundle struct {
	locale       language.Tag
	messages     map[string]*ast.Message
	terms        map[string]*ast.Term
	functions    map[string]Function
	memo         *memoizer
	layouts      DateTimeLayouts
	pluralRule   PluralRule
	transform    func(string) string
	formatter    func(Value) (string, bool)
	onMissing    func(id, attribute string)
	useIsolating bool
}

// NewBundle creates a bundle for the given locale. Directional isolation is
// on, the CLDR plural rule is installed, and the NUMBER and DATETIME
// functions are registered; options may override each of these.
func NewBundle(locale language.Tag, opts ...Option) (*Bundle, error) {
	if locale.IsRoot() {
		return nil, ErrUndefinedLocale
	}

	b := &Bundle{
		locale:   locale,
		messages: make(map[string]*ast.Message),
		terms:    make(map[string]*ast.Term),
		functions: map[string]Function{
			"NUMBER":   builtinNumber,
			"DATETIME": builtinDatetime,
		},
		memo:         newMemoizer(),
		layouts:      defaultDateTimeLayouts(),
		pluralRule:   CLDRPluralRule,
		useIsolating: true,
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return b, nil
}

// Locale returns the locale the bundle formats for.
func (b *Bundle) Locale() language.Tag {
	return b.locale
}

// UseIsolating reports whether interpolated fragments are wrapped in Unicode
// directional isolate marks.
func (b *Bundle) UseIsolating() bool {
	return b.useIsolating
}

// AddFunction registers a custom function under the given name. Names use the
// uppercase call syntax, [A-Z][A-Z0-9_-]*. Registering a taken name is an
// error and the existing function stays; to replace a built-in, pass
// WithFunction to NewBundle instead.
func (b *Bundle) AddFunction(name string, fn Function) error {
	if fn == nil {
		return ErrNilFunction
	}
	if !isValidFunctionName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFunctionName, name)
	}
	if _, exists := b.functions[name]; exists {
		return &OverrideError{Kind: "function", ID: name}
	}
	b.functions[name] = fn
	return nil
}

// HasMessage reports whether a message with the given id is registered.
func (b *Bundle) HasMessage(id string) bool {
	_, ok := b.messages[id]
	return ok
}

// GetMessage returns the registered message with the given id.
func (b *Bundle) GetMessage(id string) (*ast.Message, bool) {
	msg, ok := b.messages[id]
	return msg, ok
}

// GetTerm returns the registered term with the given id.
func (b *Bundle) GetTerm(id string) (*ast.Term, bool) {
	term, ok := b.terms[id]
	return term, ok
}

// FormatMessage resolves the value pattern of the message with the given id.
// The returned string is always usable: failed fragments render as
// placeholders, and the returned diagnostics say what went wrong. A nil args
// map is an empty environment.
func (b *Bundle) FormatMessage(id string, args Args) (string, []error) {
	msg, ok := b.messages[id]
	if !ok {
		b.reportMissing(id, "")
		return placeholder(id), []error{&ResolveError{Kind: UnknownReference, Ref: id}}
	}
	if msg.Value == nil {
		return placeholder(id), []error{&ResolveError{Kind: NoMessageValue, Ref: id}}
	}

	s := newScope(b, args)
	s.visited = append(s.visited, messageKey(id, ""))
	var buf strings.Builder
	s.writePattern(&buf, msg.Value)
	return buf.String(), s.errs
}

// FormatAttribute resolves one attribute of the message with the given id.
func (b *Bundle) FormatAttribute(id, attribute string, args Args) (string, []error) {
	ref := id + "." + attribute
	msg, ok := b.messages[id]
	if !ok {
		b.reportMissing(id, attribute)
		return placeholder(ref), []error{&ResolveError{Kind: UnknownReference, Ref: ref}}
	}
	attr, ok := msg.GetAttribute(attribute)
	if !ok {
		b.reportMissing(id, attribute)
		return placeholder(ref), []error{&ResolveError{Kind: UnknownReference, Ref: ref}}
	}

	s := newScope(b, args)
	s.visited = append(s.visited, messageKey(id, attribute))
	var buf strings.Builder
	s.writePattern(&buf, attr.Value)
	return buf.String(), s.errs
}

// FormatPattern resolves a pattern that is not registered on the bundle, for
// callers that manage messages themselves. References the pattern makes are
// looked up on the bundle and guarded by the usual cycle and depth
// accounting. Select expressions in a raw pattern may lack a default variant;
// when no variant matches either, the placeable renders as "???".
func (b *Bundle) FormatPattern(p *ast.Pattern, args Args) (string, []error) {
	if p == nil {
		return "", nil
	}
	s := newScope(b, args)
	var buf strings.Builder
	s.writePattern(&buf, p)
	return buf.String(), s.errs
}

func (b *Bundle) reportMissing(id, attribute string) {
	if b.onMissing != nil {
		b.onMissing(id, attribute)
	}
}
