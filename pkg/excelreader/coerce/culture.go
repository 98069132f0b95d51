package coerce

import "time"

// Culture describes how numbers and dates are written in cell text.
// The zero value is equivalent to Invariant().
type Culture struct {
	// DecimalSeparator separates the integer and fractional parts. Default ".".
	DecimalSeparator string
	// GroupSeparator separates digit groups and is ignored when parsing. Default ",".
	GroupSeparator string
	// CurrencySymbol is stripped from either end of a number. Default "¤".
	CurrencySymbol string
	// DateLayouts are tried in order when text is not a serial day count.
	DateLayouts []string
	// Location is used for serial dates and layouts without a zone. Default UTC.
	Location *time.Location
}

// DefaultDateLayouts are the layouts of the invariant culture.
var DefaultDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/1/2 15:04:05",
	"2006/1/2",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// Invariant returns the culture-neutral format: "." decimals, "," groups,
// US-ordered dates, UTC.
func Invariant() Culture {
	return Culture{
		DecimalSeparator: ".",
		GroupSeparator:   ",",
		CurrencySymbol:   "¤",
		DateLayouts:      DefaultDateLayouts,
		Location:         time.UTC,
	}
}

func (c Culture) withDefaults() Culture {
	inv := Invariant()
	if c.DecimalSeparator == "" {
		c.DecimalSeparator = inv.DecimalSeparator
	}
	if c.GroupSeparator == "" {
		c.GroupSeparator = inv.GroupSeparator
	}
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = inv.CurrencySymbol
	}
	if c.DateLayouts == nil {
		c.DateLayouts = inv.DateLayouts
	}
	if c.Location == nil {
		c.Location = inv.Location
	}
	return c
}
