// Package pluralops derives CLDR plural-rule operands from the canonical
// decimal rendering of a number.
//
// The operands are defined by the CLDR plural rules specification: n is the
// absolute value of the number, i its integer digits, v and w the counts of
// visible fraction digits with and without trailing zeros, and f and t the
// visible fraction digits themselves with and without trailing zeros. Plural
// selection depends on the digits a user actually sees, which is why the
// operands are computed from the formatted string rather than from the float:
// "1.0" is plural category "other" in English while "1" is "one".
package pluralops

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrSyntax is returned when the input is not a plain decimal number.
var ErrSyntax = errors.New("pluralops: not a decimal number")

// Operands holds the CLDR plural operands of one rendered number.
type Operands struct {
	N float64 // absolute value
	I int64   // integer digits
	V int     // visible fraction digit count, with trailing zeros
	W int     // visible fraction digit count, without trailing zeros
	F int64   // visible fraction digits, with trailing zeros
	T int64   // visible fraction digits, without trailing zeros
}

// FromString parses a canonical decimal rendering such as "1", "-12.450" or
// "0.5" into plural operands. The input must be ungrouped: separators other
// than a single leading sign and a single decimal point are rejected.
func FromString(s string) (Operands, error) {
	if s == "" {
		return Operands{}, ErrSyntax
	}

	abs := strings.TrimPrefix(s, "-")
	intPart := abs
	fracPart := ""
	if dot := strings.IndexByte(abs, '.'); dot >= 0 {
		intPart = abs[:dot]
		fracPart = abs[dot+1:]
	}

	if intPart == "" || !isDigits(intPart) {
		return Operands{}, ErrSyntax
	}
	if fracPart != "" && !isDigits(fracPart) {
		return Operands{}, ErrSyntax
	}

	n, err := strconv.ParseFloat(abs, 64)
	if err != nil {
		return Operands{}, ErrSyntax
	}

	op := Operands{N: n}

	// Integer digits can exceed int64 for absurd inputs; saturate rather
	// than fail, since plural rules only inspect small moduli.
	op.I, err = strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		op.I = math.MaxInt64
	}

	op.V = len(fracPart)
	if op.V > 0 {
		op.F = parseFracDigits(fracPart)
		trimmed := strings.TrimRight(fracPart, "0")
		op.W = len(trimmed)
		if op.W > 0 {
			op.T = parseFracDigits(trimmed)
		}
	}

	return op, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseFracDigits converts a digit run to its integer value. Runs too long
// for int64 collapse to zero; they carry no plural-relevant information
// beyond their length, which is tracked separately.
func parseFracDigits(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
