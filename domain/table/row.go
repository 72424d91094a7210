package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is a single record of a tabular snapshot: column name → scalar value.
// Values are strings, numbers, nil, or absent. Rows are never mutated by the
// analysis pipeline.
type Row map[string]any

// Value returns the cell for a column and whether the column is present.
func (r Row) Value(col string) (any, bool) {
	v, ok := r[col]
	return v, ok
}

// IsMissing reports whether the cell is absent, nil, or an empty string.
func (r Row) IsMissing(col string) bool {
	v, ok := r[col]
	if !ok || v == nil {
		return true
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

// ParseNumber converts a cell to a float64 using permissive parseFloat
// semantics: a string parses if it starts with a numeric prefix ("12abc" →
// 12). Returns false for values with no finite numeric interpretation.
// Unparseable cells contribute 0 to sums and are excluded from averages;
// keeping that leniency intact is part of the aggregation contract.
func ParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		prefix := numericPrefix(strings.TrimSpace(n))
		if prefix == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

// ParseExactNumber accepts only cells that are entirely numeric and finite,
// unlike the prefix-tolerant ParseNumber. Strings like "Inf" or "NaN" parse
// as floats but are not finite numbers, so they are rejected here too.
func ParseExactNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if f != f || f > maxFinite || f < -maxFinite {
		return 0, false
	}
	return f, true
}

const maxFinite = 1.797693134862315708145274237317043567981e308

// numericPrefix returns the longest leading substring of s that forms a
// valid floating point literal, or "" if none exists.
func numericPrefix(s string) string {
	i := 0
	n := len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digitsBefore := 0
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
		digitsBefore++
	}
	digitsAfter := 0
	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
			digitsAfter++
		}
	}
	if digitsBefore == 0 && digitsAfter == 0 {
		return ""
	}
	// Optional exponent
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < n && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	return s[:i]
}

// Stringify renders a cell the way group keys and filter membership tests
// expect: numbers without a trailing ".0", nil as the empty string.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Layouts accepted when interpreting cells as dates. Ordered from most to
// least common in uploaded datasets.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01",
	"01/02/2006",
	"2006/01/02",
	"01/02/2006 15:04",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseTime interprets a cell as a calendar date. Numbers are not dates;
// strings must match one of the accepted layouts.
func ParseTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
