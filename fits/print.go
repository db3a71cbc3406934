package fits

import (
	"fmt"
	"math"
	"strings"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/types"
)

// formatValue renders the payload in FITS-legal syntax, or "" for types
// without a value field.
func (c Card) formatValue() (string, error) {
	switch c.typ {
	case types.TypeLogical:
		return format.FormatLogical(c.bval), nil
	case types.TypeInteger:
		return format.FormatInteger(c.ival), nil
	case types.TypeFloat:
		v := real(c.cval)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("%w: %v has no FITS representation", types.ErrConversion, v)
		}
		return format.FormatFloat(v), nil
	case types.TypeComplex:
		re, im := real(c.cval), imag(c.cval)
		if math.IsNaN(re) || math.IsInf(re, 0) || math.IsNaN(im) || math.IsInf(im, 0) {
			return "", fmt.Errorf("%w: %v has no FITS representation", types.ErrConversion, c.cval)
		}
		return format.FormatComplex(c.cval), nil
	case types.TypeString:
		return format.FormatString(c.sval), nil
	case types.TypeUndefined, types.TypeComment, types.TypeEnd:
		return "", nil
	default:
		return "", fmt.Errorf("%w: unhandled card type %d", types.ErrConversion, c.typ)
	}
}

// encodeValue is formatValue with the string payload re-encoded to
// Latin-1 for the wire. String and GoString keep UTF-8.
func (c Card) encodeValue() (string, error) {
	if c.typ == types.TypeString {
		s, err := encodeText(c.sval)
		if err != nil {
			return "", err
		}
		return format.FormatString(s), nil
	}
	return c.formatValue()
}

// String renders the card as a single human-readable line approximating
// the FITS column layout: the name padded to 8 columns (HIERARCH names
// as-is), "= " and the formatted value, then " / " and the comment when
// present.
func (c Card) String() string {
	switch c.typ {
	case types.TypeEnd:
		return format.EndKeyword
	case types.TypeComment:
		if c.comment == "" {
			return c.name
		}
		return pad(c.name, format.KeywordSize) + c.comment
	}

	val, err := c.formatValue()
	if err != nil {
		val = "<invalid>"
	}
	var sb strings.Builder
	if c.key.IsHierarch() {
		sb.WriteString(c.name)
		sb.WriteString(" ")
	} else {
		sb.WriteString(pad(c.name, format.KeywordSize))
	}
	sb.WriteString("= ")
	sb.WriteString(val)
	if c.comment != "" {
		sb.WriteString(" / ")
		sb.WriteString(c.comment)
	}
	return sb.String()
}

// GoString renders a diagnostic form suitable for reconstruction.
func (c Card) GoString() string {
	return fmt.Sprintf("fits.Card{name: %q, type: %s, value: %v, comment: %q}",
		c.name, c.typ, c.Value(), c.comment)
}

// Encode serializes the card to its 80-byte fixed-width record. Fixed
// alignment follows the standard: short-keyword values are right-
// justified to column 30 when they fit, strings open at column 11. A
// comment that does not fit is truncated (the standard's by-design
// precision loss); a keyword and value that do not fit are an error.
func (c Card) Encode() ([]byte, error) {
	out := make([]byte, format.CardSize)
	for i := range out {
		out[i] = ' '
	}

	// Header text is single-byte on the wire; re-encode UTF-8 comments
	// and string values as Latin-1, the inverse of the parse-side decode.
	comment, err := encodeText(c.comment)
	if err != nil {
		return nil, err
	}

	switch c.typ {
	case types.TypeEnd:
		copy(out, format.EndKeyword)
		return out, nil
	case types.TypeComment:
		copy(out, c.name)
		// HIERARCH commentary text begins after the "HIERARCH " prefix;
		// other commentary text fills columns 9-80.
		start := format.KeywordSize
		if c.key.IsHierarch() {
			start = format.HierarchNameOffset
		}
		rest := out[start:]
		if len(comment) > len(rest) {
			copy(rest, comment[:len(rest)])
		} else {
			copy(rest, comment)
		}
		return out, nil
	}

	val, err := c.encodeValue()
	if err != nil {
		return nil, err
	}

	var line strings.Builder
	if c.key.IsHierarch() {
		line.WriteString(c.name)
		line.WriteString(" = ")
		line.WriteString(val)
	} else {
		line.WriteString(pad(c.name, format.KeywordSize))
		line.WriteString("= ")
		if c.typ != types.TypeString && c.typ != types.TypeUndefined {
			// Right-justify fixed-format values to column 30.
			if n := 20 - len(val); n > 0 {
				line.WriteString(strings.Repeat(" ", n))
			}
		}
		line.WriteString(val)
	}
	if line.Len() > format.CardSize {
		return nil, fmt.Errorf("%w: card %q does not fit in %d bytes",
			types.ErrMalformedCard, c.name, format.CardSize)
	}

	if comment != "" && line.Len()+3 < format.CardSize {
		line.WriteString(" / ")
		room := format.CardSize - line.Len()
		if len(comment) > room {
			line.WriteString(comment[:room])
		} else {
			line.WriteString(comment)
		}
	}

	copy(out, line.String())
	return out, nil
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
