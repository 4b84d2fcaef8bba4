// Package ast defines the runtime representation of parsed localization
// resources consumed by the fluent package.
//
// Nodes are produced by an external parser (or decoded from serialized
// resource documents) and are treated as immutable once handed to a bundle.
// All text fragments are owned Go strings; nodes never reference the source
// buffer they were parsed from.
package ast

// Resource is an ordered collection of messages and terms, typically the
// result of parsing a single resource file.
type Resource struct {
	Entries []Entry
}

// Entry is either a *Message or a *Term.
type Entry interface {
	entryNode()
}

// Message is a named translation unit addressable from application code.
// Value holds the main pattern and may be nil for attribute-only messages.
type Message struct {
	ID         string
	Value      *Pattern
	Attributes []Attribute
}

// Term is a private translation unit referenced from other messages and
// terms, never from application code. Terms may be invoked with call
// arguments that form the argument environment of their own resolution.
type Term struct {
	ID         string
	Value      *Pattern
	Attributes []Attribute
}

func (*Message) entryNode() {}
func (*Term) entryNode()    {}

// Attribute is a named sub-pattern attached to a message or term.
type Attribute struct {
	ID    string
	Value *Pattern
}

// Pattern is an ordered sequence of literal text and placeables. Order is
// significant and preserved in output.
type Pattern struct {
	Elements []PatternElement
}

// PatternElement is either *Text or *Placeable.
type PatternElement interface {
	patternElement()
}

// Text is a run of literal text copied verbatim into the output.
type Text struct {
	Value string
}

// Placeable wraps an expression whose resolved value is substituted into the
// surrounding pattern. A Placeable is also an Expression, so placeables may
// nest.
type Placeable struct {
	Expression Expression
}

func (*Text) patternElement()      {}
func (*Placeable) patternElement() {}

// Expression is any placeable content requiring resolution.
type Expression interface {
	expressionNode()
}

// StringLiteral is an inline quoted string. The parser has already processed
// any escape sequences; Value is the final text.
type StringLiteral struct {
	Value string
}

// NumberLiteral is an inline number kept in its source spelling so that the
// fraction digits written by the author survive into plural selection.
type NumberLiteral struct {
	Value string
}

// VariableReference resolves a name against the argument environment.
type VariableReference struct {
	ID string
}

// MessageReference resolves another message, or one of its attributes when
// Attribute is non-empty.
type MessageReference struct {
	ID        string
	Attribute string
}

// TermReference resolves a term, or one of its attributes, optionally passing
// call arguments that become the term's local argument environment.
type TermReference struct {
	ID        string
	Attribute string
	Arguments *CallArguments
}

// FunctionReference invokes a function registered on the bundle.
type FunctionReference struct {
	ID        string
	Arguments *CallArguments
}

// SelectExpression chooses one of its variants based on the resolved
// selector value. Exactly one variant must be marked as the default.
type SelectExpression struct {
	Selector Expression
	Variants []Variant
}

func (*StringLiteral) expressionNode()     {}
func (*NumberLiteral) expressionNode()     {}
func (*VariableReference) expressionNode() {}
func (*MessageReference) expressionNode()  {}
func (*TermReference) expressionNode()     {}
func (*FunctionReference) expressionNode() {}
func (*SelectExpression) expressionNode()  {}
func (*Placeable) expressionNode()         {}

// CallArguments holds the arguments of a term or function invocation.
type CallArguments struct {
	Positional []Expression
	Named      []NamedArgument
}

// NamedArgument is a named option of a call. The grammar restricts values to
// literals, but the engine resolves any inline expression it finds here.
type NamedArgument struct {
	Name  string
	Value Expression
}

// Variant is one labeled branch of a select expression.
type Variant struct {
	Key     VariantKey
	Value   *Pattern
	Default bool
}

// VariantKey is either an *Identifier (a plural category or other word key)
// or a *NumberLiteral.
type VariantKey interface {
	variantKey()
}

// Identifier is a bare word used as a variant key.
type Identifier struct {
	Name string
}

func (*Identifier) variantKey()    {}
func (*NumberLiteral) variantKey() {}

// GetAttribute returns the named attribute of the message, if present.
func (m *Message) GetAttribute(id string) (*Attribute, bool) {
	for i := range m.Attributes {
		if m.Attributes[i].ID == id {
			return &m.Attributes[i], true
		}
	}
	return nil, false
}

// GetAttribute returns the named attribute of the term, if present.
func (t *Term) GetAttribute(id string) (*Attribute, bool) {
	for i := range t.Attributes {
		if t.Attributes[i].ID == id {
			return &t.Attributes[i], true
		}
	}
	return nil, false
}
