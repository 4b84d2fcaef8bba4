package fluent

import "time"

// DateTimeStyle selects one of the Intl.DateTimeFormat length presets for the
// date or time half of a rendered timestamp.
type DateTimeStyle uint8

const (
	DateTimeUnset DateTimeStyle = iota
	DateTimeFull
	DateTimeLong
	DateTimeMedium
	DateTimeShort
)

func (s DateTimeStyle) String() string {
	switch s {
	case DateTimeFull:
		return "full"
	case DateTimeLong:
		return "long"
	case DateTimeMedium:
		return "medium"
	case DateTimeShort:
		return "short"
	default:
		return "unset"
	}
}

func dateTimeStyleFrom(s string) DateTimeStyle {
	switch s {
	case "full":
		return DateTimeFull
	case "long":
		return DateTimeLong
	case "medium":
		return DateTimeMedium
	case "short":
		return DateTimeShort
	default:
		return DateTimeUnset
	}
}

// TimeOptions carries the Intl.DateTimeFormat subset understood by the
// built-in DATETIME function. When both styles are unset the date renders in
// the short style.
type TimeOptions struct {
	DateStyle DateTimeStyle
	TimeStyle DateTimeStyle
}

// mergeArgs overlays the named arguments of a DATETIME call onto the options.
func (o *TimeOptions) mergeArgs(named Args) {
	for name, v := range named {
		switch name {
		case "dateStyle":
			if s, ok := v.(String); ok {
				o.DateStyle = dateTimeStyleFrom(string(s))
			}
		case "timeStyle":
			if s, ok := v.(String); ok {
				o.TimeStyle = dateTimeStyleFrom(string(s))
			}
		}
	}
}

func (o TimeOptions) cacheKey() string {
	return o.DateStyle.String() + "|" + o.TimeStyle.String()
}

// Time is a timestamp value together with its formatting options.
type Time struct {
	Value   time.Time
	Options TimeOptions
}

func (Time) fluentValue() {}

// DateTimeLayouts maps each style preset to a time.Format layout. Bundles
// start with en-US defaults; localized bundles override them through
// WithDateTimeLayouts.
type DateTimeLayouts struct {
	DateFull   string
	DateLong   string
	DateMedium string
	DateShort  string
	TimeFull   string
	TimeLong   string
	TimeMedium string
	TimeShort  string
}

func defaultDateTimeLayouts() DateTimeLayouts {
	return DateTimeLayouts{
		DateFull:   "Monday, January 2, 2006",
		DateLong:   "January 2, 2006",
		DateMedium: "Jan 2, 2006",
		DateShort:  "1/2/2006",
		TimeFull:   "3:04:05 PM MST",
		TimeLong:   "3:04:05 PM MST",
		TimeMedium: "3:04:05 PM",
		TimeShort:  "3:04 PM",
	}
}

// merge fills empty layout slots from other, keeping existing entries.
func (l DateTimeLayouts) merge(other DateTimeLayouts) DateTimeLayouts {
	if l.DateFull == "" {
		l.DateFull = other.DateFull
	}
	if l.DateLong == "" {
		l.DateLong = other.DateLong
	}
	if l.DateMedium == "" {
		l.DateMedium = other.DateMedium
	}
	if l.DateShort == "" {
		l.DateShort = other.DateShort
	}
	if l.TimeFull == "" {
		l.TimeFull = other.TimeFull
	}
	if l.TimeLong == "" {
		l.TimeLong = other.TimeLong
	}
	if l.TimeMedium == "" {
		l.TimeMedium = other.TimeMedium
	}
	if l.TimeShort == "" {
		l.TimeShort = other.TimeShort
	}
	return l
}

func (l DateTimeLayouts) dateLayout(s DateTimeStyle) string {
	switch s {
	case DateTimeFull:
		return l.DateFull
	case DateTimeLong:
		return l.DateLong
	case DateTimeMedium:
		return l.DateMedium
	case DateTimeShort:
		return l.DateShort
	default:
		return ""
	}
}

func (l DateTimeLayouts) timeLayout(s DateTimeStyle) string {
	switch s {
	case DateTimeFull:
		return l.TimeFull
	case DateTimeLong:
		return l.TimeLong
	case DateTimeMedium:
		return l.TimeMedium
	case DateTimeShort:
		return l.TimeShort
	default:
		return ""
	}
}

// layoutFor combines the date and time layouts selected by the options into a
// single time.Format layout.
func (l DateTimeLayouts) layoutFor(o TimeOptions) string {
	date := l.dateLayout(o.DateStyle)
	clock := l.timeLayout(o.TimeStyle)
	switch {
	case date != "" && clock != "":
		return date + ", " + clock
	case clock != "":
		return clock
	case date != "":
		return date
	default:
		return l.DateShort
	}
}
