package fluent

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/fluent/ast"
)

const (
	// maxResolveDepth bounds how deeply references may nest before
	// resolution gives up on the branch.
	maxResolveDepth = 100
	// maxPlaceables bounds how many placeables a single format call may
	// resolve in total, which caps the fan-out of reference bombs.
	maxPlaceables = 100
)

// Unicode directional isolate marks wrapped around interpolated fragments.
const (
	fsi = "⁨"
	pdi = "⁩"
)

// scope is the per-call state of one format operation. Scopes are cheap,
// single-goroutine, and never outlive the call.
type scope struct {
	bundle *Bundle
	args   Args
	// local is the argument environment of the term currently being
	// resolved. While non-nil it fully replaces args, so terms never see
	// the caller's variables.
	local      Args
	visited    []string
	depth      int
	placeables int
	errs       []error
	// dirty is set when the placeable budget is spent; the rest of the
	// output is abandoned.
	dirty bool
}

func newScope(b *Bundle, args Args) *scope {
	return &scope{bundle: b, args: args}
}

func (s *scope) report(kind ErrorKind, ref string) {
	s.errs = append(s.errs, &ResolveError{Kind: kind, Ref: ref})
}

func placeholder(ref string) string {
	return "{" + ref + "}"
}

func writePlaceholder(buf *strings.Builder, ref string) {
	buf.WriteString("{")
	buf.WriteString(ref)
	buf.WriteString("}")
}

func messageKey(id, attribute string) string {
	if attribute != "" {
		return "m:" + id + "." + attribute
	}
	return "m:" + id
}

func termKey(id, attribute string) string {
	if attribute != "" {
		return "t:" + id + "." + attribute
	}
	return "t:" + id
}

// refString renders a reference in its source spelling for diagnostics and
// placeholders.
func refString(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.VariableReference:
		return "$" + e.ID
	case *ast.MessageReference:
		if e.Attribute != "" {
			return e.ID + "." + e.Attribute
		}
		return e.ID
	case *ast.TermReference:
		if e.Attribute != "" {
			return "-" + e.ID + "." + e.Attribute
		}
		return "-" + e.ID
	case *ast.FunctionReference:
		return e.ID + "()"
	case *ast.StringLiteral:
		return `"` + e.Value + `"`
	case *ast.NumberLiteral:
		return e.Value
	default:
		return "???"
	}
}

// writePattern appends the resolved pattern to buf. Isolation marks are only
// inserted for mixed patterns, so a message that is a single placeable stays
// unwrapped.
func (s *scope) writePattern(buf *strings.Builder, p *ast.Pattern) {
	if p == nil {
		return
	}
	mixed := len(p.Elements) > 1
	for _, el := range p.Elements {
		if s.dirty {
			return
		}
		switch el := el.(type) {
		case *ast.Text:
			if transform := s.bundle.transform; transform != nil {
				buf.WriteString(transform(el.Value))
			} else {
				buf.WriteString(el.Value)
			}
		case *ast.Placeable:
			if !s.spendPlaceable() {
				return
			}
			isolate := s.bundle.useIsolating && mixed && !isolationExempt(el.Expression)
			if isolate {
				buf.WriteString(fsi)
			}
			s.writeExpression(buf, el.Expression)
			if isolate && !s.dirty {
				buf.WriteString(pdi)
			}
		}
	}
}

// spendPlaceable consumes one unit of the placeable budget. The budget never
// replenishes within a call, so sibling subtrees cannot multiply work that a
// depth bound alone would allow.
func (s *scope) spendPlaceable() bool {
	s.placeables++
	if s.placeables > maxPlaceables {
		s.dirty = true
		s.report(TooManyPlaceables, "")
		return false
	}
	return true
}

// isolationExempt reports whether a placeable's output is left unwrapped even
// in mixed patterns. References to other entries produce text in the same
// language as the surrounding pattern, so wrapping them would only litter the
// output with marks.
func isolationExempt(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.MessageReference, *ast.TermReference, *ast.StringLiteral:
		return true
	}
	return false
}

// writeExpression resolves one placeable expression into buf.
func (s *scope) writeExpression(buf *strings.Builder, expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		buf.WriteString(e.Value)
	case *ast.NumberLiteral:
		n, err := ParseNumber(e.Value)
		if err != nil {
			buf.WriteString(e.Value)
			return
		}
		s.writeValue(buf, n, e.Value)
	case *ast.VariableReference:
		s.writeValue(buf, s.resolveVariable(e), refString(e))
	case *ast.FunctionReference:
		s.writeValue(buf, s.callFunction(e), refString(e))
	case *ast.MessageReference:
		s.writeMessageReference(buf, e)
	case *ast.TermReference:
		s.writeTermReference(buf, e)
	case *ast.SelectExpression:
		s.writeSelect(buf, e)
	case *ast.Placeable:
		if !s.spendPlaceable() {
			return
		}
		s.writeExpression(buf, e.Expression)
	}
}

// writeValue renders a resolved value. The bundle's formatter hook, when set,
// gets the first chance at every value.
func (s *scope) writeValue(buf *strings.Builder, v Value, ref string) {
	if formatter := s.bundle.formatter; formatter != nil {
		if out, ok := formatter(v); ok {
			buf.WriteString(out)
			return
		}
	}
	switch v := v.(type) {
	case String:
		buf.WriteString(string(v))
	case Number:
		buf.WriteString(s.bundle.formatNumber(v))
	case Time:
		buf.WriteString(s.bundle.formatTime(v))
	case NoValue:
		s.report(MissingValue, ref)
		writePlaceholder(buf, ref)
	case ErrorValue:
		// The diagnostic was recorded where the value failed to resolve.
		if v.Ref != "" {
			ref = v.Ref
		}
		writePlaceholder(buf, ref)
	}
}

// resolveVariable looks a variable up in the active environment. Inside a
// term only the term's own arguments are visible, and probing for an absent
// one is routine rather than an authoring mistake, so no diagnostic is
// recorded there.
func (s *scope) resolveVariable(ref *ast.VariableReference) Value {
	if s.local != nil {
		if v, ok := s.local[ref.ID]; ok {
			return v
		}
		return ErrorValue{Ref: refString(ref)}
	}
	if v, ok := s.args[ref.ID]; ok {
		return v
	}
	s.report(MissingValue, refString(ref))
	return ErrorValue{Ref: refString(ref)}
}

func (s *scope) writeMessageReference(buf *strings.Builder, ref *ast.MessageReference) {
	msg, ok := s.bundle.messages[ref.ID]
	if !ok {
		s.report(UnknownReference, refString(ref))
		writePlaceholder(buf, refString(ref))
		return
	}
	if ref.Attribute != "" {
		attr, ok := msg.GetAttribute(ref.Attribute)
		if !ok {
			s.report(UnknownReference, refString(ref))
			writePlaceholder(buf, refString(ref))
			return
		}
		s.trackPattern(buf, attr.Value, messageKey(ref.ID, ref.Attribute), refString(ref))
		return
	}
	if msg.Value == nil {
		s.report(NoMessageValue, refString(ref))
		writePlaceholder(buf, refString(ref))
		return
	}
	s.trackPattern(buf, msg.Value, messageKey(ref.ID, ""), refString(ref))
}

func (s *scope) writeTermReference(buf *strings.Builder, ref *ast.TermReference) {
	// Call arguments are evaluated in the caller's environment, exactly
	// once each, before the overlay swap.
	_, named := s.resolveArguments(ref.Arguments)
	prev := s.local
	s.local = named
	defer func() { s.local = prev }()

	term, ok := s.bundle.terms[ref.ID]
	if !ok {
		s.report(UnknownReference, refString(ref))
		writePlaceholder(buf, refString(ref))
		return
	}
	if ref.Attribute != "" {
		attr, ok := term.GetAttribute(ref.Attribute)
		if !ok {
			s.report(UnknownReference, refString(ref))
			writePlaceholder(buf, refString(ref))
			return
		}
		s.trackPattern(buf, attr.Value, termKey(ref.ID, ref.Attribute), refString(ref))
		return
	}
	if term.Value == nil {
		// Registration rejects valueless terms; this only guards ASTs
		// assembled by hand.
		s.report(NoMessageValue, refString(ref))
		writePlaceholder(buf, refString(ref))
		return
	}
	s.trackPattern(buf, term.Value, termKey(ref.ID, ""), refString(ref))
}

// trackPattern resolves a referenced pattern with cycle and depth accounting.
// Both the visited key and the depth are restored on exit, so sibling
// references each get the full depth allowance and may legitimately revisit
// entries this branch already finished with.
func (s *scope) trackPattern(buf *strings.Builder, p *ast.Pattern, key, ref string) {
	if slices.Contains(s.visited, key) {
		s.report(Cyclic, ref)
		writePlaceholder(buf, ref)
		return
	}
	if s.depth >= maxResolveDepth {
		s.report(DepthExceeded, ref)
		writePlaceholder(buf, ref)
		return
	}
	s.visited = append(s.visited, key)
	s.depth++
	s.writePattern(buf, p)
	s.depth--
	s.visited = s.visited[:len(s.visited)-1]
}

// resolveArguments evaluates a call argument list. Positional values keep
// declaration order. The named map is never nil so it can serve as a term's
// (possibly empty) argument environment.
func (s *scope) resolveArguments(args *ast.CallArguments) ([]Value, Args) {
	if args == nil {
		return nil, Args{}
	}
	var positional []Value
	if len(args.Positional) > 0 {
		positional = make([]Value, 0, len(args.Positional))
		for _, a := range args.Positional {
			positional = append(positional, s.resolveInline(a))
		}
	}
	named := make(Args, len(args.Named))
	for _, na := range args.Named {
		named[na.Name] = s.resolveInline(na.Value)
	}
	return positional, named
}

func (s *scope) callFunction(ref *ast.FunctionReference) Value {
	fn, ok := s.bundle.functions[ref.ID]
	if !ok {
		s.report(UnknownFunction, refString(ref))
		return ErrorValue{Ref: refString(ref)}
	}
	positional, named := s.resolveArguments(ref.Arguments)
	return fn(positional, named)
}

// resolveInline evaluates an expression to a value, for selectors and call
// arguments. Entry references resolve to their rendered text.
func (s *scope) resolveInline(expr ast.Expression) Value {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return String(e.Value)
	case *ast.NumberLiteral:
		n, err := ParseNumber(e.Value)
		if err != nil {
			return String(e.Value)
		}
		return n
	case *ast.VariableReference:
		return s.resolveVariable(e)
	case *ast.FunctionReference:
		return s.callFunction(e)
	default:
		var buf strings.Builder
		s.writeExpression(&buf, e)
		return String(buf.String())
	}
}

// writeSelect matches the selector against the variants. Exact matches win
// over plural-category matches regardless of declaration order: a Number
// first scans the number keys, then asks the plural rule and scans the
// category keys. Anything unmatched, including error values, falls through to
// the default variant.
//
// Selector resolution is charged one depth level. Selectors are the one spot
// where an expression recurses without passing through a placeable, so without
// the charge a nested-selector chain would never hit either bound.
func (s *scope) writeSelect(buf *strings.Builder, sel *ast.SelectExpression) {
	var selector Value = ErrorValue{}
	if s.depth >= maxResolveDepth {
		s.report(DepthExceeded, refString(sel.Selector))
	} else {
		s.depth++
		selector = s.resolveInline(sel.Selector)
		s.depth--
	}

	switch v := selector.(type) {
	case String:
		for i := range sel.Variants {
			key, ok := sel.Variants[i].Key.(*ast.Identifier)
			if ok && key.Name == string(v) {
				s.writePattern(buf, sel.Variants[i].Value)
				return
			}
		}
	case Number:
		for i := range sel.Variants {
			key, ok := sel.Variants[i].Key.(*ast.NumberLiteral)
			if !ok {
				continue
			}
			if kn, err := ParseNumber(key.Value); err == nil && kn.Value == v.Value {
				s.writePattern(buf, sel.Variants[i].Value)
				return
			}
		}
		category := s.bundle.pluralRule(s.bundle.locale, v)
		for i := range sel.Variants {
			key, ok := sel.Variants[i].Key.(*ast.Identifier)
			if !ok {
				continue
			}
			if c, ok := pluralCategoryFrom(key.Name); ok && c == category {
				s.writePattern(buf, sel.Variants[i].Value)
				return
			}
		}
	}

	for i := range sel.Variants {
		if sel.Variants[i].Default {
			s.writePattern(buf, sel.Variants[i].Value)
			return
		}
	}
	// Unreachable for registered entries; raw patterns may get here.
	s.report(MissingDefault, "")
	buf.WriteString("???")
}
