package core

// convert.go normalizes user-entered values before they are written to a table.
//
// Every cell is stored as text, so conversion here means choosing one
// canonical spelling per type:
//   - Dates in many layouts (US, EU, ISO) become YYYY-MM-DD
//   - Times in 12h or 24h form become HH:MM
//   - Numbers lose currency symbols and thousands separators
//   - Booleans (yes/no, true/false, 1/0) become true or false
//
// All Normalize* functions return ok=false for empty or invalid input.

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

// Canonical layouts written to table files.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Date layouts split by year format for proper 2-digit year handling
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
	timeLayouts = []string{
		"15:04", "15:04:05", "3:04PM", "3:04 PM", "3:04pm", "3:04 pm", "1504",
	}
)

// NormalizeDate parses s in any supported layout and returns it as YYYY-MM-DD.
func NormalizeDate(s string) (string, bool) {
	t, ok := parseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(DateLayout), true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Try 4-digit year layouts first (unambiguous)
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, true
		}
	}

	// Try 2-digit year layouts with pivot year adjustment
	pivotYear := time.Now().Year() + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

// NormalizeTime parses a clock time and returns it as HH:MM.
func NormalizeTime(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Format(TimeLayout), true
		}
	}
	return "", false
}

// ParseNumeric converts a string to a decimal.
// Handles currency symbols, thousands separators, and accounting format (parentheses for negative).
func ParseNumeric(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Remove common currency symbols and thousands separators
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// NormalizeNumeric returns the canonical decimal spelling of s.
func NormalizeNumeric(s string) (string, bool) {
	d, ok := ParseNumeric(s)
	if !ok {
		return "", false
	}
	return d.String(), true
}

// NormalizeInteger is NormalizeNumeric restricted to whole numbers.
func NormalizeInteger(s string) (string, bool) {
	d, ok := ParseNumeric(s)
	if !ok || !d.IsInteger() {
		return "", false
	}
	return d.String(), true
}

// NormalizeBool converts a string to "true" or "false".
// Accepts various representations: true/false, yes/no, t/f, y/n, 1/0.
func NormalizeBool(s string) (string, bool) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "t", "yes", "y", "1":
		return "true", true
	case "false", "f", "no", "n", "0":
		return "false", true
	default:
		return "", false
	}
}

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// CleanCell removes common artifacts from a typed or pasted value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	// Remove leading '='
	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	// Remove one pair of surrounding quotes
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return s
}
