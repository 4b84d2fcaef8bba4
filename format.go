package fluent

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type numberFormatter func(float64) string

// formatNumber renders n for the bundle's locale, building the formatter for
// this option set on first use and memoizing it for the bundle's lifetime.
func (b *Bundle) formatNumber(n Number) string {
	key := "number|" + b.locale.String() + "|" + n.Options.cacheKey()
	format, ok := b.memo.get(key, func() any {
		return newNumberFormatter(b.locale, n.Options)
	}).(numberFormatter)
	if !ok {
		return n.canonical()
	}
	return format(n.Value)
}

// formatTime renders t for the bundle's locale. Only the resolved layout is
// memoized; time.Format itself is stateless.
func (b *Bundle) formatTime(t Time) string {
	key := "datetime|" + b.locale.String() + "|" + t.Options.cacheKey()
	layout, ok := b.memo.get(key, func() any {
		return b.layouts.layoutFor(t.Options)
	}).(string)
	if !ok {
		return t.Value.Format(b.layouts.layoutFor(TimeOptions{}))
	}
	return t.Value.Format(layout)
}

// newNumberFormatter builds a rendering closure for one locale and option
// set. The closure is stateless and safe for concurrent use.
func newNumberFormatter(locale language.Tag, o NumberOptions) numberFormatter {
	p := message.NewPrinter(locale)

	opts := make([]number.Option, 0, 5)
	if o.MinimumIntegerDigits != nil {
		opts = append(opts, number.MinIntegerDigits(clampDigits(*o.MinimumIntegerDigits)))
	}
	if o.MinimumFractionDigits != nil {
		opts = append(opts, number.MinFractionDigits(clampDigits(*o.MinimumFractionDigits)))
	}
	if o.MaximumFractionDigits != nil {
		opts = append(opts, number.MaxFractionDigits(clampDigits(*o.MaximumFractionDigits)))
	}
	// x/text has no minimum-significant-digits option; only the maximum maps.
	if o.MaximumSignificantDigits != nil {
		opts = append(opts, number.Precision(clampDigits(*o.MaximumSignificantDigits)))
	}
	if o.NoGrouping {
		opts = append(opts, number.NoSeparator())
	}

	switch o.Style {
	case StyleCurrency:
		unit, err := currency.ParseISO(o.Currency)
		if err != nil {
			// Unknown or missing currency codes degrade to plain decimals.
			break
		}
		format := currency.Symbol
		if o.CurrencyDisplay != CurrencySymbol {
			// x/text has no spelled-out display, so "name" renders as "code".
			format = currency.ISO
		}
		return func(v float64) string {
			return p.Sprint(format(unit.Amount(v)))
		}
	case StylePercent:
		return func(v float64) string {
			return p.Sprint(number.Percent(v, opts...))
		}
	}
	return func(v float64) string {
		return p.Sprint(number.Decimal(v, opts...))
	}
}
