package fluent

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberStyle selects the rendering family for a Number, mirroring the
// Intl.NumberFormat style option.
type NumberStyle uint8

const (
	StyleDecimal NumberStyle = iota
	StyleCurrency
	StylePercent
)

func (s NumberStyle) String() string {
	switch s {
	case StyleCurrency:
		return "currency"
	case StylePercent:
		return "percent"
	default:
		return "decimal"
	}
}

func numberStyleFrom(s string) NumberStyle {
	switch s {
	case "currency":
		return StyleCurrency
	case "percent":
		return StylePercent
	default:
		return StyleDecimal
	}
}

// CurrencyDisplay selects how the currency unit is shown when the style is
// StyleCurrency.
type CurrencyDisplay uint8

const (
	CurrencySymbol CurrencyDisplay = iota
	CurrencyCode
	CurrencyName
)

func (d CurrencyDisplay) String() string {
	switch d {
	case CurrencyCode:
		return "code"
	case CurrencyName:
		return "name"
	default:
		return "symbol"
	}
}

func currencyDisplayFrom(s string) CurrencyDisplay {
	switch s {
	case "code":
		return CurrencyCode
	case "name":
		return CurrencyName
	default:
		return CurrencySymbol
	}
}

// digitOptionLimit bounds every digit-count option so a hostile option value
// cannot force huge formatting buffers.
const digitOptionLimit = 100

// NumberOptions carries the Intl.NumberFormat subset understood by the
// built-in NUMBER function. Nil digit fields mean "unset" and fall back to
// locale defaults; use Ptr to set them in literals.
type NumberOptions struct {
	Style           NumberStyle
	Currency        string // ISO 4217 code, required for StyleCurrency
	CurrencyDisplay CurrencyDisplay
	NoGrouping      bool

	MinimumIntegerDigits     *int
	MinimumFractionDigits    *int
	MaximumFractionDigits    *int
	MinimumSignificantDigits *int
	MaximumSignificantDigits *int
}

// mergeArgs overlays the named arguments of a NUMBER call onto the options.
// Unknown names and mistyped values are skipped; each recognized name is
// applied independently, so the map's iteration order does not matter.
func (o *NumberOptions) mergeArgs(named Args) {
	for name, v := range named {
		switch name {
		case "style":
			if s, ok := v.(String); ok {
				o.Style = numberStyleFrom(string(s))
			}
		case "currency":
			if s, ok := v.(String); ok {
				o.Currency = string(s)
			}
		case "currencyDisplay":
			if s, ok := v.(String); ok {
				o.CurrencyDisplay = currencyDisplayFrom(string(s))
			}
		case "useGrouping":
			if s, ok := v.(String); ok {
				o.NoGrouping = string(s) == "false"
			}
		case "minimumIntegerDigits":
			if n, ok := v.(Number); ok {
				o.MinimumIntegerDigits = Ptr(int(n.Value))
			}
		case "minimumFractionDigits":
			if n, ok := v.(Number); ok {
				o.MinimumFractionDigits = Ptr(int(n.Value))
			}
		case "maximumFractionDigits":
			if n, ok := v.(Number); ok {
				o.MaximumFractionDigits = Ptr(int(n.Value))
			}
		case "minimumSignificantDigits":
			if n, ok := v.(Number); ok {
				o.MinimumSignificantDigits = Ptr(int(n.Value))
			}
		case "maximumSignificantDigits":
			if n, ok := v.(Number); ok {
				o.MaximumSignificantDigits = Ptr(int(n.Value))
			}
		}
	}
}

// cacheKey encodes the option set for formatter memoization. Unset digit
// fields encode as "-" so they never collide with explicit values.
func (o NumberOptions) cacheKey() string {
	var b strings.Builder
	b.WriteString(o.Style.String())
	b.WriteByte('|')
	b.WriteString(o.Currency)
	b.WriteByte('|')
	b.WriteString(o.CurrencyDisplay.String())
	b.WriteByte('|')
	if o.NoGrouping {
		b.WriteString("nogroup")
	}
	for _, p := range []*int{
		o.MinimumIntegerDigits,
		o.MinimumFractionDigits,
		o.MaximumFractionDigits,
		o.MinimumSignificantDigits,
		o.MaximumSignificantDigits,
	} {
		b.WriteByte('|')
		if p != nil {
			b.WriteString(strconv.Itoa(*p))
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Number is a numeric value together with its formatting options. Select
// expressions match it against number keys by numeric value and against
// category keys through the bundle's plural rule.
type Number struct {
	Value   float64
	Options NumberOptions
}

func (Number) fluentValue() {}

// ParseNumber parses a number literal as it appears in a pattern. The number
// of fraction digits in the literal is preserved as MinimumFractionDigits, so
// "1.0" keeps its trailing zero when rendered and selects the right plural
// category.
func ParseNumber(s string) (Number, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, fmt.Errorf("fluent: parse number %q: %w", s, err)
	}
	n := Number{Value: v}
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		n.Options.MinimumFractionDigits = Ptr(len(s) - dot - 1)
	}
	return n, nil
}

func clampDigits(d int) int {
	if d < 0 {
		return 0
	}
	if d > digitOptionLimit {
		return digitOptionLimit
	}
	return d
}

// canonical renders the number as a plain ungrouped decimal string honoring
// the fraction-digit options. This is the form plural operands are derived
// from and the fallback rendering when no locale formatter applies.
func (n Number) canonical() string {
	maxFD := 15
	if n.Options.MaximumFractionDigits != nil {
		maxFD = clampDigits(*n.Options.MaximumFractionDigits)
	}
	s := strconv.FormatFloat(n.Value, 'f', maxFD, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
	}
	if n.Options.MinimumFractionDigits != nil {
		minFD := clampDigits(*n.Options.MinimumFractionDigits)
		if minFD > 0 {
			dot := strings.IndexByte(s, '.')
			if dot < 0 {
				s += "."
				dot = len(s) - 1
			}
			if frac := len(s) - dot - 1; frac < minFD {
				s += strings.Repeat("0", minFD-frac)
			}
		}
	}
	return strings.TrimSuffix(s, ".")
}
