package fluent

import (
	"errors"
	"io/fs"

	"github.com/dmitrymomot/fluent/ast"
)

// Option configures a Bundle during construction. Options are applied in
// order; an option error aborts NewBundle.
type Option func(*Bundle) error

// WithUseIsolating controls whether interpolated fragments are wrapped in
// Unicode directional isolate marks (FSI/PDI) in mixed patterns. It is on by
// default; turn it off for plain-text sinks such as logs or test fixtures.
func WithUseIsolating(use bool) Option {
	return func(b *Bundle) error {
		b.useIsolating = use
		return nil
	}
}

// WithFunction registers a custom function during construction. Unlike
// AddFunction it replaces any earlier registration under the same name, so it
// can swap out the built-in NUMBER and DATETIME implementations.
func WithFunction(name string, fn Function) Option {
	return func(b *Bundle) error {
		if fn == nil {
			return ErrNilFunction
		}
		if !isValidFunctionName(name) {
			return ErrInvalidFunctionName
		}
		b.functions[name] = fn
		return nil
	}
}

// WithPluralRule replaces the CLDR-backed plural rule, typically to pin
// categories in tests or to support a locale variant CLDR does not cover.
func WithPluralRule(rule PluralRule) Option {
	return func(b *Bundle) error {
		if rule == nil {
			return ErrNilPluralRule
		}
		b.pluralRule = rule
		return nil
	}
}

// WithTransform installs a transform applied to every literal text fragment
// of resolved patterns, and never to interpolated values. It is meant for
// pseudolocalization; a nil transform disables it.
func WithTransform(transform func(string) string) Option {
	return func(b *Bundle) error {
		b.transform = transform
		return nil
	}
}

// WithFormatter installs an override consulted before the bundle's own value
// rendering. Returning ok=false falls through to the default rendering for
// that value; a nil formatter disables the hook.
func WithFormatter(formatter func(v Value) (string, bool)) Option {
	return func(b *Bundle) error {
		b.formatter = formatter
		return nil
	}
}

// WithMissingHandler installs a callback invoked when FormatMessage or
// FormatAttribute is asked for an id that is not registered. The attribute is
// empty when the whole message is missing. The bundle itself never logs; this
// hook is where applications wire their own reporting.
func WithMissingHandler(handler func(id, attribute string)) Option {
	return func(b *Bundle) error {
		b.onMissing = handler
		return nil
	}
}

// WithDateTimeLayouts overrides the layouts used to render Time values. Empty
// slots keep their defaults, so a locale only has to specify the layouts that
// differ from en-US.
func WithDateTimeLayouts(layouts DateTimeLayouts) Option {
	return func(b *Bundle) error {
		b.layouts = layouts.merge(defaultDateTimeLayouts())
		return nil
	}
}

// WithResource registers a parsed resource during construction. Unlike
// AddResource, a rejected entry aborts construction with the joined per-entry
// errors.
func WithResource(res *ast.Resource) Option {
	return func(b *Bundle) error {
		if errs := b.AddResource(res); len(errs) > 0 {
			return errors.Join(errs...)
		}
		return nil
	}
}

// WithResourceDir decodes and registers every resource document under the
// file system, walking it in lexical order. Files with extensions .json,
// .yaml, .yml, and .toml are decoded; everything else is skipped. Any decode
// or registration error aborts construction.
func WithResourceDir(fsys fs.FS) Option {
	return func(b *Bundle) error {
		return b.loadDir(fsys)
	}
}
