package format

import (
	"strconv"
	"strings"
)

// Value formatters: the inverse of the parsers in value.go. Each emits
// FITS-legal syntax such that re-parsing the output recovers an equal
// value.

// FormatLogical renders a logical value as 'T' or 'F'.
func FormatLogical(v bool) string {
	if v {
		return "T"
	}
	return "F"
}

// FormatInteger renders a signed 64-bit integer in decimal.
func FormatInteger(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatFloat renders a float with the shortest representation that
// parses back exactly. A '.0' suffix keeps integral values inside the
// float grammar.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'G', -1, 64)
	if !strings.ContainsAny(s, ".E") {
		s += ".0"
	}
	return s
}

// FormatComplex renders a complex value as "(re, im)".
func FormatComplex(v complex128) string {
	return "(" + FormatFloat(real(v)) + ", " + FormatFloat(imag(v)) + ")"
}

// FormatString renders a quoted string: embedded quotes doubled and one
// trailing pad space before the closing quote, matching the single
// trailing space ParseString strips.
func FormatString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	sb.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			sb.WriteString("''")
			continue
		}
		sb.WriteByte(s[i])
	}
	sb.WriteString(" '")
	return sb.String()
}

// FormatUnits renders a comment from its units part and unitless text.
func FormatUnits(units, unitless string) string {
	if units == "" {
		return unitless
	}
	if unitless == "" {
		return "[" + units + "]"
	}
	return "[" + units + "] " + unitless
}
