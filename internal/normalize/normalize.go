// Package normalize provides the field-level cleaning primitives shared
// by every dataset cleaner: currency extraction, string normalization,
// and lenient date parsing. All parsers coerce failure to nil rather
// than returning an error, so a bad cell never aborts a batch.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// currencyPattern matches the "($ 1,234.56)" notation used by the
// booking system's ARTIST NET column, optionally negative.
var currencyPattern = regexp.MustCompile(`\(\$ (-?[\d,]+\.\d+)\)`)

// ParseCurrency extracts the dollar amount embedded in a parenthesized
// currency string. Returns nil when the pattern is absent or the input
// cell is null.
func ParseCurrency(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	m := currencyPattern.FindStringSubmatch(*raw)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// CleanString trims and lowercases a string cell. A null cell passes
// through as nil.
func CleanString(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(*raw))
	return &s
}

// dateLayouts are tried in order. Covers the formats observed across
// the contract, bluecard, and lead exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"20060102",
}

// ParseDate parses a date cell leniently, trying each known layout.
// Unparsable or null input yields nil.
func ParseDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// FormatDate renders a parsed date as ISO YYYY-MM-DD. A nil date
// renders as the fixed placeholder "nan", matching the historical key
// format so null-date rows keep colliding the same way they always
// have rather than silently changing join behavior.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "nan"
	}
	return t.Format("2006-01-02")
}
