// Package fluent resolves natural-language messages from structured patterns,
// following the Fluent localization model of messages, terms, attributes, and
// select expressions.
//
// A Bundle holds the messages of one locale. Patterns interpolate runtime
// arguments, reference other messages and terms, branch on plural categories,
// and call formatting functions. Formatting never fails: broken references
// render as placeholders and the problems come back as a diagnostic slice, so
// a missing translation can never take a page down.
//
// # Quick Start
//
// Create a bundle for a locale, register resources, and format:
//
//	bundle, err := fluent.NewBundle(language.AmericanEnglish,
//	    fluent.WithResourceDir(resources),
//	    fluent.WithUseIsolating(false),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, diags := bundle.FormatMessage("cart-summary", fluent.Args{
//	    "name":  fluent.String("Anna"),
//	    "count": fluent.Int(3),
//	})
//
// Resource documents are JSON, YAML, or TOML. Plain strings are literal text
// and maps are placeables:
//
//	messages:
//	  cart-summary:
//	    value:
//	      - {var: name}
//	      - " has "
//	      - select:
//	          selector: {var: count}
//	          variants:
//	            - {key: one, value: ["one item"]}
//	            - {key: other, default: true, value: [{var: count}, " items"]}
//
// # Values
//
// Arguments are typed: String, Number, and Time render through the bundle's
// locale, NoValue marks an explicitly absent value, and ErrorValue marks a
// failed resolution. ValueOf converts plain Go values, and NewArgs converts
// whole maps. Number and Time carry their own formatting options, which the
// built-in NUMBER and DATETIME functions override per call site.
//
// # Terms
//
// Terms are private building blocks referenced as {-term}. A term sees only
// the arguments of its own call, never the caller's variables, so shared
// phrases cannot silently depend on ambient state:
//
//	terms:
//	  brand:
//	    value:
//	      - select:
//	          selector: {var: case}
//	          variants:
//	            - {key: nominative, default: true, value: ["Firefox"]}
//	            - {key: locative, value: ["Firefoxie"]}
//	messages:
//	  settings-title:
//	    value: ["About ", {term: brand, opts: {case: locative}}]
//
// # Safety
//
// Resolution is bounded: references are cycle-checked, nesting is capped at
// 100 levels, and each format call may resolve at most 100 placeables. A
// pattern that trips a bound degrades to placeholders instead of hanging the
// caller. Mixed patterns wrap interpolated fragments in Unicode directional
// isolate marks so right-to-left values cannot reorder the surrounding text;
// WithUseIsolating(false) turns that off.
//
// Bundles are not safe for concurrent mutation: register resources and
// functions up front, then share the bundle freely between goroutines for
// formatting.
package fluent
