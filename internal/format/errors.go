package format

import "errors"

var (
	// ErrBadKeyword indicates a keyword with illegal characters, interior
	// spaces, or an ambiguous HIERARCH form.
	ErrBadKeyword = errors.New("format: malformed keyword")
	// ErrNoIndicator indicates a value keyword without the "= " indicator.
	ErrNoIndicator = errors.New("format: missing value indicator")
	// ErrBadLogical indicates a logical token other than a single T or F.
	ErrBadLogical = errors.New("format: malformed logical value")
	// ErrBadInteger indicates a malformed or out-of-range integer token.
	ErrBadInteger = errors.New("format: malformed integer value")
	// ErrBadFloat indicates a malformed floating-point token.
	ErrBadFloat = errors.New("format: malformed floating-point value")
	// ErrBadComplex indicates unbalanced parentheses or a missing component.
	ErrBadComplex = errors.New("format: malformed complex value")
	// ErrBadString indicates an unterminated or unescaped quoted string.
	ErrBadString = errors.New("format: malformed string value")
	// ErrBadValue indicates a value token matching none of the six grammars.
	ErrBadValue = errors.New("format: unrecognized value syntax")
	// ErrBounds indicates a scan offset outside the buffer.
	ErrBounds = errors.New("format: offset out of bounds")
)
