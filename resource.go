package fluent

import (
	"fmt"

	"github.com/dmitrymomot/fluent/ast"
)

// maxValidationDepth bounds the registration-time walk over nested
// expressions so a pathological document cannot exhaust the stack.
const maxValidationDepth = 128

// AddResource registers every entry of the resource on the bundle.
// Registration is per entry: an invalid entry or an id collision is reported
// and skipped while the remaining entries still register. On collisions the
// already-registered entry always stays. The returned slice is empty on full
// success.
//
// Entries are validated structurally before registration, so resolution can
// assume that terms have values, attributes have patterns, and every select
// expression reachable from a registered entry has exactly one default
// variant.
func (b *Bundle) AddResource(res *ast.Resource) []error {
	if res == nil {
		return []error{ErrNilResource}
	}

	var errs []error
	for _, entry := range res.Entries {
		switch e := entry.(type) {
		case *ast.Message:
			if err := validateMessage(e); err != nil {
				errs = append(errs, err)
				continue
			}
			if _, exists := b.messages[e.ID]; exists {
				errs = append(errs, &OverrideError{Kind: "message", ID: e.ID})
				continue
			}
			b.messages[e.ID] = e
		case *ast.Term:
			if err := validateTerm(e); err != nil {
				errs = append(errs, err)
				continue
			}
			if _, exists := b.terms[e.ID]; exists {
				errs = append(errs, &OverrideError{Kind: "term", ID: e.ID})
				continue
			}
			b.terms[e.ID] = e
		default:
			errs = append(errs, fmt.Errorf("%w: unsupported entry %T", ErrInvalidResource, entry))
		}
	}
	return errs
}

func validateMessage(m *ast.Message) error {
	if !isValidIdentifier(m.ID) {
		return &ResourceError{ID: m.ID, Err: ErrInvalidIdentifier}
	}
	if m.Value == nil && len(m.Attributes) == 0 {
		return &ResourceError{ID: m.ID, Err: ErrEmptyEntry}
	}
	if err := validatePattern(m.Value, 0); err != nil {
		return &ResourceError{ID: m.ID, Err: err}
	}
	return validateAttributes(m.ID, m.Attributes)
}

func validateTerm(t *ast.Term) error {
	if !isValidIdentifier(t.ID) {
		return &ResourceError{ID: t.ID, Err: ErrInvalidIdentifier}
	}
	if t.Value == nil {
		return &ResourceError{ID: t.ID, Err: ErrNoTermValue}
	}
	if err := validatePattern(t.Value, 0); err != nil {
		return &ResourceError{ID: t.ID, Err: err}
	}
	return validateAttributes(t.ID, t.Attributes)
}

func validateAttributes(entryID string, attrs []ast.Attribute) error {
	for i := range attrs {
		a := &attrs[i]
		ref := entryID + "." + a.ID
		if !isValidIdentifier(a.ID) {
			return &ResourceError{ID: ref, Err: ErrInvalidIdentifier}
		}
		if a.Value == nil {
			return &ResourceError{ID: ref, Err: ErrEmptyEntry}
		}
		if err := validatePattern(a.Value, 0); err != nil {
			return &ResourceError{ID: ref, Err: err}
		}
	}
	return nil
}

func validatePattern(p *ast.Pattern, depth int) error {
	if p == nil {
		return nil
	}
	if depth > maxValidationDepth {
		return ErrNestingTooDeep
	}
	for _, el := range p.Elements {
		switch el := el.(type) {
		case *ast.Text:
		case *ast.Placeable:
			if err := validateExpression(el.Expression, depth+1); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unsupported pattern element %T", ErrInvalidResource, el)
		}
	}
	return nil
}

func validateExpression(expr ast.Expression, depth int) error {
	if depth > maxValidationDepth {
		return ErrNestingTooDeep
	}
	switch e := expr.(type) {
	case nil:
		return fmt.Errorf("%w: nil expression", ErrInvalidResource)
	case *ast.StringLiteral, *ast.NumberLiteral, *ast.VariableReference, *ast.MessageReference:
		return nil
	case *ast.TermReference:
		return validateArguments(e.Arguments, depth+1)
	case *ast.FunctionReference:
		return validateArguments(e.Arguments, depth+1)
	case *ast.Placeable:
		return validateExpression(e.Expression, depth+1)
	case *ast.SelectExpression:
		return validateSelect(e, depth+1)
	default:
		return fmt.Errorf("%w: unsupported expression %T", ErrInvalidResource, expr)
	}
}

func validateArguments(args *ast.CallArguments, depth int) error {
	if args == nil {
		return nil
	}
	for _, a := range args.Positional {
		if err := validateExpression(a, depth); err != nil {
			return err
		}
	}
	for _, na := range args.Named {
		if !isValidIdentifier(na.Name) {
			return fmt.Errorf("%w: argument name %q", ErrInvalidIdentifier, na.Name)
		}
		if err := validateExpression(na.Value, depth); err != nil {
			return err
		}
	}
	return nil
}

func validateSelect(sel *ast.SelectExpression, depth int) error {
	if err := validateExpression(sel.Selector, depth); err != nil {
		return err
	}
	defaults := 0
	for i := range sel.Variants {
		v := &sel.Variants[i]
		if v.Default {
			defaults++
		}
		switch key := v.Key.(type) {
		case *ast.Identifier:
			if !isValidIdentifier(key.Name) {
				return fmt.Errorf("%w: variant key %q", ErrInvalidIdentifier, key.Name)
			}
		case *ast.NumberLiteral:
			if _, err := ParseNumber(key.Value); err != nil {
				return fmt.Errorf("%w: variant key %q", ErrInvalidResource, key.Value)
			}
		default:
			return fmt.Errorf("%w: unsupported variant key %T", ErrInvalidResource, v.Key)
		}
		if v.Value == nil {
			return fmt.Errorf("%w: variant without pattern", ErrInvalidResource)
		}
		if err := validatePattern(v.Value, depth); err != nil {
			return err
		}
	}
	switch {
	case defaults == 0:
		return ErrNoDefaultVariant
	case defaults > 1:
		return ErrManyDefaultVariants
	}
	return nil
}
