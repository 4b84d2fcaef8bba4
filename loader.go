package fluent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fluent/ast"
	"github.com/dmitrymomot/fluent/internal/pluralops"
)

// maxDocumentDepth bounds placeable nesting in decoded documents, ahead of
// the stricter budgets resolution applies.
const maxDocumentDepth = 64

// resourceDoc is the on-disk shape of a resource document. Pattern elements
// are either plain strings (literal text) or single-purpose maps: {var},
// {str}, {num}, {msg [attr]}, {term [attr] [args] [opts]},
// {func [args] [opts]}, and {select {selector, variants}}.
type resourceDoc struct {
	Messages map[string]entryDoc `json:"messages" yaml:"messages" toml:"messages"`
	Terms    map[string]entryDoc `json:"terms" yaml:"terms" toml:"terms"`
}

type entryDoc struct {
	Value      []any            `json:"value" yaml:"value" toml:"value"`
	Attributes map[string][]any `json:"attributes" yaml:"attributes" toml:"attributes"`
}

// DecodeResource parses one resource document in the given format ("json",
// "yaml", or "toml") into a resource ready for AddResource. Entries decode in
// sorted id order, messages before terms, so registration diagnostics are
// deterministic.
func DecodeResource(data []byte, format string) (*ast.Resource, error) {
	unmarshal, ok := unmarshalFor("." + strings.ToLower(format))
	if !ok {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidResource, format)
	}
	return decodeResource(data, unmarshal)
}

func unmarshalFor(ext string) (func([]byte, any) error, bool) {
	switch ext {
	case ".json":
		return json.Unmarshal, true
	case ".yaml", ".yml":
		return yaml.Unmarshal, true
	case ".toml":
		return toml.Unmarshal, true
	default:
		return nil, false
	}
}

func (b *Bundle) loadDir(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		unmarshal, ok := unmarshalFor(strings.ToLower(path.Ext(filePath)))
		if !ok {
			return nil
		}

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		res, err := decodeResource(data, unmarshal)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", filePath, err)
		}
		if errs := b.AddResource(res); len(errs) > 0 {
			return fmt.Errorf("registering %q: %w", filePath, errors.Join(errs...))
		}
		return nil
	})
}

// sortedKeys returns the map's keys in ascending order, so decoding walks
// entries deterministically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func decodeResource(data []byte, unmarshal func([]byte, any) error) (*ast.Resource, error) {
	var doc resourceDoc
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResource, err)
	}

	res := &ast.Resource{}
	for _, id := range sortedKeys(doc.Messages) {
		value, attrs, err := convertEntry(doc.Messages[id])
		if err != nil {
			return nil, fmt.Errorf("message %q: %w", id, err)
		}
		res.Entries = append(res.Entries, &ast.Message{ID: id, Value: value, Attributes: attrs})
	}
	for _, id := range sortedKeys(doc.Terms) {
		value, attrs, err := convertEntry(doc.Terms[id])
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", id, err)
		}
		res.Entries = append(res.Entries, &ast.Term{ID: id, Value: value, Attributes: attrs})
	}
	return res, nil
}

func convertEntry(e entryDoc) (*ast.Pattern, []ast.Attribute, error) {
	var value *ast.Pattern
	if e.Value != nil {
		p, err := convertPattern(e.Value, 0)
		if err != nil {
			return nil, nil, err
		}
		value = p
	}
	var attrs []ast.Attribute
	for _, name := range sortedKeys(e.Attributes) {
		p, err := convertPattern(e.Attributes[name], 0)
		if err != nil {
			return nil, nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		attrs = append(attrs, ast.Attribute{ID: name, Value: p})
	}
	return value, attrs, nil
}

func convertPattern(elements []any, depth int) (*ast.Pattern, error) {
	if depth > maxDocumentDepth {
		return nil, ErrNestingTooDeep
	}
	p := &ast.Pattern{Elements: make([]ast.PatternElement, 0, len(elements))}
	for i, el := range elements {
		switch el := el.(type) {
		case string:
			p.Elements = append(p.Elements, &ast.Text{Value: el})
		case map[string]any:
			expr, err := convertExpression(el, depth+1)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			p.Elements = append(p.Elements, &ast.Placeable{Expression: expr})
		default:
			return nil, fmt.Errorf("%w: element %d must be text or a placeable map, got %T", ErrInvalidResource, i, el)
		}
	}
	return p, nil
}

func convertExpression(m map[string]any, depth int) (ast.Expression, error) {
	if depth > maxDocumentDepth {
		return nil, ErrNestingTooDeep
	}

	if raw, ok := m["var"]; ok {
		name, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: var must be a string, got %T", ErrInvalidResource, raw)
		}
		return &ast.VariableReference{ID: name}, nil
	}
	if raw, ok := m["str"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: str must be a string, got %T", ErrInvalidResource, raw)
		}
		return &ast.StringLiteral{Value: s}, nil
	}
	if raw, ok := m["num"]; ok {
		s, ok := scalarString(raw)
		if !ok {
			return nil, fmt.Errorf("%w: num must be a number or numeric string, got %T", ErrInvalidResource, raw)
		}
		return &ast.NumberLiteral{Value: s}, nil
	}
	if raw, ok := m["msg"]; ok {
		id, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: msg must be a string, got %T", ErrInvalidResource, raw)
		}
		attr, err := optionalString(m, "attr")
		if err != nil {
			return nil, err
		}
		return &ast.MessageReference{ID: id, Attribute: attr}, nil
	}
	if raw, ok := m["term"]; ok {
		id, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: term must be a string, got %T", ErrInvalidResource, raw)
		}
		attr, err := optionalString(m, "attr")
		if err != nil {
			return nil, err
		}
		args, err := convertCallArguments(m, depth+1)
		if err != nil {
			return nil, err
		}
		return &ast.TermReference{ID: id, Attribute: attr, Arguments: args}, nil
	}
	if raw, ok := m["func"]; ok {
		id, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: func must be a string, got %T", ErrInvalidResource, raw)
		}
		args, err := convertCallArguments(m, depth+1)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionReference{ID: id, Arguments: args}, nil
	}
	if raw, ok := m["select"]; ok {
		sub, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: select must be a map, got %T", ErrInvalidResource, raw)
		}
		return convertSelect(sub, depth+1)
	}
	return nil, fmt.Errorf("%w: placeable needs one of var, str, num, msg, term, func, select", ErrInvalidResource)
}

func convertCallArguments(m map[string]any, depth int) (*ast.CallArguments, error) {
	var positional []ast.Expression
	if raw, ok := m["args"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: args must be a list, got %T", ErrInvalidResource, raw)
		}
		for i, a := range list {
			expr, err := convertInline(a, depth)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			positional = append(positional, expr)
		}
	}

	var named []ast.NamedArgument
	if raw, ok := m["opts"]; ok {
		opts, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: opts must be a map, got %T", ErrInvalidResource, raw)
		}
		for _, name := range sortedKeys(opts) {
			expr, err := convertInline(opts[name], depth)
			if err != nil {
				return nil, fmt.Errorf("option %q: %w", name, err)
			}
			named = append(named, ast.NamedArgument{Name: name, Value: expr})
		}
	}

	if positional == nil && named == nil {
		return nil, nil
	}
	return &ast.CallArguments{Positional: positional, Named: named}, nil
}

// convertInline decodes a call argument or named option. Bare strings are
// string literals here, not text, and bare numbers are number literals.
func convertInline(v any, depth int) (ast.Expression, error) {
	switch v := v.(type) {
	case string:
		return &ast.StringLiteral{Value: v}, nil
	case map[string]any:
		return convertExpression(v, depth)
	default:
		if s, ok := scalarString(v); ok {
			return &ast.NumberLiteral{Value: s}, nil
		}
		return nil, fmt.Errorf("%w: argument must be a string, number, or placeable map, got %T", ErrInvalidResource, v)
	}
}

func convertSelect(m map[string]any, depth int) (ast.Expression, error) {
	if depth > maxDocumentDepth {
		return nil, ErrNestingTooDeep
	}

	rawSelector, ok := m["selector"]
	if !ok {
		return nil, fmt.Errorf("%w: select needs a selector", ErrInvalidResource)
	}
	selectorMap, ok := rawSelector.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: selector must be a placeable map, got %T", ErrInvalidResource, rawSelector)
	}
	selector, err := convertExpression(selectorMap, depth+1)
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}

	rawVariants, ok := m["variants"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: select needs a variants list", ErrInvalidResource)
	}
	variants := make([]ast.Variant, 0, len(rawVariants))
	for i, rv := range rawVariants {
		vm, ok := rv.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: variant %d must be a map, got %T", ErrInvalidResource, i, rv)
		}

		var key ast.VariantKey
		switch k := vm["key"].(type) {
		case string:
			// Quoted numeric keys like "1.0" are number keys with pinned
			// fraction digits, not identifiers. Only plain decimals count;
			// words that ParseFloat happens to accept ("nan", "inf", "1e3")
			// stay identifiers.
			if _, err := pluralops.FromString(k); err == nil {
				key = &ast.NumberLiteral{Value: k}
			} else {
				key = &ast.Identifier{Name: k}
			}
		case nil:
			return nil, fmt.Errorf("%w: variant %d needs a key", ErrInvalidResource, i)
		default:
			s, ok := scalarString(k)
			if !ok {
				return nil, fmt.Errorf("%w: variant %d key must be a string or number, got %T", ErrInvalidResource, i, k)
			}
			key = &ast.NumberLiteral{Value: s}
		}

		def, _ := vm["default"].(bool)

		rawValue, ok := vm["value"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: variant %d needs a value list", ErrInvalidResource, i)
		}
		value, err := convertPattern(rawValue, depth+1)
		if err != nil {
			return nil, fmt.Errorf("variant %d: %w", i, err)
		}

		variants = append(variants, ast.Variant{Key: key, Value: value, Default: def})
	}

	return &ast.SelectExpression{Selector: selector, Variants: variants}, nil
}

func optionalString(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidResource, key, raw)
	}
	return s, nil
}

// scalarString renders a decoded scalar as a number literal. Strings pass
// through so documents can pin fraction digits, e.g. "1.0".
func scalarString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}
