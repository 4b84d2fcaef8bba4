package fluent

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/internal/pluralops"
)

// PluralCategory is one of the six CLDR cardinal categories. Select
// expressions match Number operands against variant keys carrying these
// names.
type PluralCategory uint8

const (
	PluralOther PluralCategory = iota
	PluralZero
	PluralOne
	PluralTwo
	PluralFew
	PluralMany
)

func (c PluralCategory) String() string {
	switch c {
	case PluralZero:
		return "zero"
	case PluralOne:
		return "one"
	case PluralTwo:
		return "two"
	case PluralFew:
		return "few"
	case PluralMany:
		return "many"
	default:
		return "other"
	}
}

func pluralCategoryFrom(s string) (PluralCategory, bool) {
	switch s {
	case "zero":
		return PluralZero, true
	case "one":
		return PluralOne, true
	case "two":
		return PluralTwo, true
	case "few":
		return PluralFew, true
	case "many":
		return PluralMany, true
	case "other":
		return PluralOther, true
	default:
		return PluralOther, false
	}
}

// PluralRule maps a number to its cardinal category for a locale. The rule
// must be pure; bundles call it concurrently.
type PluralRule func(locale language.Tag, num Number) PluralCategory

// CLDRPluralRule is the default PluralRule, backed by the CLDR cardinal
// tables. Operands are derived from the number's canonical rendering, so
// explicit fraction-digit options shift the category the way visible digits
// do in CLDR: with two fraction digits fixed, 1 renders as "1.00" and is
// categorized as "other" rather than "one".
func CLDRPluralRule(locale language.Tag, num Number) PluralCategory {
	op, err := pluralops.FromString(num.canonical())
	if err != nil {
		return PluralOther
	}
	// MatchPlural documents that overlarge operands may be passed modulo 1e7.
	const mod = 10000000
	form := plural.Cardinal.MatchPlural(locale, int(op.I%mod), op.V, op.W, int(op.F%mod), int(op.T%mod))
	switch form {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}
