package fluent_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluent"
	"github.com/dmitrymomot/fluent/ast"
)

// call builds a message whose whole value is one function call.
func call(id, fn string, positional []ast.Expression, named ...ast.NamedArgument) ast.Entry {
	args := &ast.CallArguments{Positional: positional, Named: named}
	return msgEntry(id, pat(place(&ast.FunctionReference{ID: fn, Arguments: args})))
}

func str(s string) ast.Expression { return &ast.StringLiteral{Value: s} }

func TestNumberFunction(t *testing.T) {
	t.Parallel()

	t.Run("rounds to the fraction digit cap", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "NUMBER",
			[]ast.Expression{varRef("n")},
			ast.NamedArgument{Name: "maximumFractionDigits", Value: &ast.NumberLiteral{Value: "1"}},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"n": fluent.Float(2.71)})
		assert.Empty(t, diags)
		assert.Equal(t, "2.7", out)
	})

	t.Run("pads to the fraction digit floor", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "NUMBER",
			[]ast.Expression{varRef("n")},
			ast.NamedArgument{Name: "minimumFractionDigits", Value: &ast.NumberLiteral{Value: "2"}},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"n": fluent.Int(5)})
		assert.Empty(t, diags)
		assert.Equal(t, "5.00", out)
	})

	t.Run("useGrouping false drops separators", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "NUMBER",
			[]ast.Expression{varRef("n")},
			ast.NamedArgument{Name: "useGrouping", Value: str("false")},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"n": fluent.Int(1234)})
		assert.Empty(t, diags)
		assert.Equal(t, "1234", out)
	})

	t.Run("percent style", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "NUMBER",
			[]ast.Expression{varRef("n")},
			ast.NamedArgument{Name: "style", Value: str("percent")},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"n": fluent.Float(0.03)})
		assert.Empty(t, diags)
		assert.Equal(t, "3%", out)
	})

	t.Run("currency style renders the amount", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "NUMBER",
			[]ast.Expression{varRef("n")},
			ast.NamedArgument{Name: "style", Value: str("currency")},
			ast.NamedArgument{Name: "currency", Value: str("USD")},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"n": fluent.Float(12.35)})
		assert.Empty(t, diags)
		assert.Contains(t, out, "12.3")
	})

	t.Run("currency code display spells the unit", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "NUMBER",
			[]ast.Expression{varRef("n")},
			ast.NamedArgument{Name: "style", Value: str("currency")},
			ast.NamedArgument{Name: "currency", Value: str("USD")},
			ast.NamedArgument{Name: "currencyDisplay", Value: str("code")},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"n": fluent.Float(12.35)})
		assert.Empty(t, diags)
		assert.Contains(t, out, "USD")
		assert.Contains(t, out, "12.3")
	})

	t.Run("unknown currency falls back to decimal", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "NUMBER",
			[]ast.Expression{varRef("n")},
			ast.NamedArgument{Name: "style", Value: str("currency")},
			ast.NamedArgument{Name: "currency", Value: str("ZZZZ")},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"n": fluent.Float(12.35)})
		assert.Empty(t, diags)
		assert.Equal(t, "12.35", out)
	})

	t.Run("non-number argument yields placeholder", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "NUMBER", []ast.Expression{varRef("n")}))
		out, diags := b.FormatMessage("m", fluent.Args{"n": fluent.String("abc")})
		assert.Empty(t, diags)
		assert.Equal(t, "{NUMBER()}", out)
	})

	t.Run("missing argument yields placeholder", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "NUMBER", nil))
		out, _ := b.FormatMessage("m", nil)
		assert.Equal(t, "{NUMBER()}", out)
	})
}

func TestDatetimeFunction(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, time.July, 15, 15, 4, 5, 0, time.UTC)

	t.Run("date and time styles combine", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "DATETIME",
			[]ast.Expression{varRef("when")},
			ast.NamedArgument{Name: "dateStyle", Value: str("medium")},
			ast.NamedArgument{Name: "timeStyle", Value: str("short")},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"when": fluent.Date(when)})
		assert.Empty(t, diags)
		assert.Equal(t, "Jul 15, 2024, 3:04 PM", out)
	})

	t.Run("date style alone", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "DATETIME",
			[]ast.Expression{varRef("when")},
			ast.NamedArgument{Name: "dateStyle", Value: str("full")},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"when": fluent.Date(when)})
		assert.Empty(t, diags)
		assert.Equal(t, "Monday, July 15, 2024", out)
	})

	t.Run("time style alone", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "DATETIME",
			[]ast.Expression{varRef("when")},
			ast.NamedArgument{Name: "timeStyle", Value: str("short")},
		))
		out, diags := b.FormatMessage("m", fluent.Args{"when": fluent.Date(when)})
		assert.Empty(t, diags)
		assert.Equal(t, "3:04 PM", out)
	})

	t.Run("epoch milliseconds convert", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "DATETIME", []ast.Expression{varRef("ts")}))
		out, diags := b.FormatMessage("m", fluent.Args{"ts": fluent.Int(0)})
		assert.Empty(t, diags)
		assert.Equal(t, "1/1/1970", out)
	})

	t.Run("wrong argument type yields placeholder", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "DATETIME", []ast.Expression{varRef("ts")}))
		out, _ := b.FormatMessage("m", fluent.Args{"ts": fluent.String("yesterday")})
		assert.Equal(t, "{DATETIME()}", out)
	})

	t.Run("custom layouts override the defaults", func(t *testing.T) {
		t.Parallel()

		b := mustBundle(t,
			fluent.WithUseIsolating(false),
			fluent.WithDateTimeLayouts(fluent.DateTimeLayouts{DateShort: "2006-01-02"}),
			fluent.WithResource(res(
				call("short", "DATETIME", []ast.Expression{varRef("when")}),
				call("medium", "DATETIME",
					[]ast.Expression{varRef("when")},
					ast.NamedArgument{Name: "dateStyle", Value: str("medium")},
				),
			)),
		)

		out, _ := b.FormatMessage("short", fluent.Args{"when": fluent.Date(when)})
		assert.Equal(t, "2024-07-15", out)

		out, _ = b.FormatMessage("medium", fluent.Args{"when": fluent.Date(when)})
		assert.Equal(t, "Jul 15, 2024", out, "unset layouts keep their defaults")
	})
}

func TestCustomFunctions(t *testing.T) {
	t.Parallel()

	concat := func(positional []fluent.Value, named fluent.Args) fluent.Value {
		sep := ""
		if s, ok := named["sep"].(fluent.String); ok {
			sep = string(s)
		}
		parts := make([]string, 0, len(positional))
		for _, v := range positional {
			s, ok := v.(fluent.String)
			if !ok {
				return fluent.ErrorValue{Ref: "CONCAT()"}
			}
			parts = append(parts, string(s))
		}
		return fluent.String(strings.Join(parts, sep))
	}

	t.Run("receives positional and named values", func(t *testing.T) {
		t.Parallel()

		b := mustBundle(t,
			fluent.WithUseIsolating(false),
			fluent.WithFunction("CONCAT", concat),
			fluent.WithResource(res(call("m", "CONCAT",
				[]ast.Expression{str("a"), varRef("x"), str("c")},
				ast.NamedArgument{Name: "sep", Value: str("-")},
			))),
		)
		out, diags := b.FormatMessage("m", fluent.Args{"x": fluent.String("b")})
		assert.Empty(t, diags)
		assert.Equal(t, "a-b-c", out)
	})

	t.Run("unknown function reports a diagnostic", func(t *testing.T) {
		t.Parallel()

		b := plainBundle(t, call("m", "GHOST", nil))
		out, diags := b.FormatMessage("m", nil)
		assert.Equal(t, "{GHOST()}", out)
		rerr := oneDiag(t, diags, fluent.UnknownFunction)
		assert.Equal(t, "GHOST()", rerr.Ref)
	})

	t.Run("error results keep the rest of the pattern", func(t *testing.T) {
		t.Parallel()

		b := mustBundle(t,
			fluent.WithUseIsolating(false),
			fluent.WithFunction("CONCAT", concat),
			fluent.WithResource(res(msgEntry("m", pat(
				txt("before "),
				place(&ast.FunctionReference{ID: "CONCAT", Arguments: &ast.CallArguments{
					Positional: []ast.Expression{&ast.NumberLiteral{Value: "1"}},
				}}),
				txt(" after"),
			)))),
		)
		out, _ := b.FormatMessage("m", nil)
		assert.Equal(t, "before {CONCAT()} after", out)
	})
}

func TestFunctionNameValidation(t *testing.T) {
	t.Parallel()

	fn := func(_ []fluent.Value, _ fluent.Args) fluent.Value { return fluent.String("") }

	valid := []string{"NUMBER2", "X", "MY_FN", "MY-FN", "A1-B2_C3"}
	for _, name := range valid {
		require.NoError(t, mustBundle(t).AddFunction(name, fn), name)
	}

	invalid := []string{"", "number", "1X", "_X", "-X", "FN()", "FN NAME", "ÉCHO"}
	for _, name := range invalid {
		assert.ErrorIs(t, mustBundle(t).AddFunction(name, fn), fluent.ErrInvalidFunctionName, name)
	}
}
