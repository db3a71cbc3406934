package format

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Value parsers for the six FITS card grammars. Each parser consumes an
// exact token delimited by ScanCard (no implicit trimming of interior
// content) and either returns a typed result or fails.

// ParseLogical parses a FITS logical token: exactly one 'T' or 'F'.
// Lowercase and word forms are rejected.
func ParseLogical(tok []byte) (bool, error) {
	if len(tok) == 1 {
		switch tok[0] {
		case 'T':
			return true, nil
		case 'F':
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %q", ErrBadLogical, tok)
}

// ParseInteger parses a FITS integer token: optional sign, one or more
// decimal digits, no embedded or surrounding whitespace. Leading zeros
// are permitted; the magnitude must fit a signed 64-bit integer.
func ParseInteger(tok []byte) (int64, error) {
	i := 0
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		i++
	}
	if i == len(tok) {
		return 0, fmt.Errorf("%w: %q", ErrBadInteger, tok)
	}
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrBadInteger, tok)
		}
	}
	v, err := strconv.ParseInt(string(tok), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadInteger, tok)
	}
	return v, nil
}

// ParseFloat parses a FITS floating-point token. The exponent may be
// introduced by 'e', 'E', 'd', or 'D' interchangeably (Fortran
// double-precision convention), so "2.3d4" equals "2.3e4".
func ParseFloat(tok []byte) (float64, error) {
	i := 0
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		i++
	}
	// The integer part is mandatory; this also keeps strconv from
	// accepting forms like ".5", "inf", or hex literals.
	if i == len(tok) || tok[i] < '0' || tok[i] > '9' {
		return 0, fmt.Errorf("%w: %q", ErrBadFloat, tok)
	}
	for _, c := range tok[i:] {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' || c == '+' || c == '-':
		case c == 'e' || c == 'E' || c == 'd' || c == 'D':
		default:
			return 0, fmt.Errorf("%w: %q", ErrBadFloat, tok)
		}
	}

	s := string(tok)
	if j := strings.IndexAny(s, "dD"); j >= 0 {
		s = s[:j] + "e" + s[j+1:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadFloat, tok)
	}
	return v, nil
}

// ParseComplex parses a FITS complex token: '(' float ',' float ')' with
// optional spaces around the parentheses and the comma. Both components
// are required.
func ParseComplex(tok []byte) (complex128, error) {
	if len(tok) < 2 || tok[0] != '(' || tok[len(tok)-1] != ')' {
		return 0, fmt.Errorf("%w: %q", ErrBadComplex, tok)
	}
	inner := tok[1 : len(tok)-1]
	comma := bytes.IndexByte(inner, ',')
	if comma < 0 {
		return 0, fmt.Errorf("%w: missing component in %q", ErrBadComplex, tok)
	}
	re, err := ParseFloat(bytes.Trim(inner[:comma], " "))
	if err != nil {
		return 0, fmt.Errorf("%w: real part of %q", ErrBadComplex, tok)
	}
	im, err := ParseFloat(bytes.Trim(inner[comma+1:], " "))
	if err != nil {
		return 0, fmt.Errorf("%w: imaginary part of %q", ErrBadComplex, tok)
	}
	return complex(re, im), nil
}

// ParseString parses a FITS quoted string token. An embedded quote is
// represented by two consecutive quotes. Leading interior spaces are
// preserved; a single trailing space before the closing quote is
// stripped (strings are space-padded to a minimum length on output).
func ParseString(tok []byte) (string, error) {
	if len(tok) < 2 || tok[0] != '\'' {
		return "", fmt.Errorf("%w: %q", ErrBadString, tok)
	}
	var sb strings.Builder
	closed := false
	for i := 1; i < len(tok); i++ {
		c := tok[i]
		if c != '\'' {
			sb.WriteByte(c)
			continue
		}
		if i+1 < len(tok) && tok[i+1] == '\'' {
			sb.WriteByte('\'')
			i++
			continue
		}
		if i != len(tok)-1 {
			return "", fmt.Errorf("%w: unescaped quote in %q", ErrBadString, tok)
		}
		closed = true
	}
	if !closed {
		return "", fmt.Errorf("%w: unterminated %q", ErrBadString, tok)
	}
	s := sb.String()
	s = strings.TrimSuffix(s, " ")
	return s, nil
}

// SplitUnits splits a comment into its bracketed units part and the
// unitless remainder. A comment without a matching ']' is entirely
// unitless.
func SplitUnits(comment string) (units, unitless string) {
	if !strings.HasPrefix(comment, "[") {
		return "", comment
	}
	end := strings.IndexByte(comment, ']')
	if end < 0 {
		return "", comment
	}
	units = strings.Trim(comment[1:end], " ")
	unitless = strings.TrimLeft(comment[end+1:], " ")
	return units, unitless
}
