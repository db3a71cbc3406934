package format

import "fmt"

// Kind classifies a scanned card by its keyword field.
type Kind int

const (
	// KindValue is a short keyword followed by the "= " value indicator.
	KindValue Kind = iota
	// KindCommentary is COMMENT, HISTORY, or a blank keyword field.
	KindCommentary
	// KindHierarch is a HIERARCH card with a located value indicator.
	KindHierarch
	// KindHierarchComment is a HIERARCH card without a value indicator.
	KindHierarchComment
	// KindEnd is the END sentinel, explicit or implicit (past-end scan).
	KindEnd
)

// Hint selects the value grammar implied by the first byte of the value
// token. The parsers in value.go validate the full token.
type Hint int

const (
	// HintNone is a blank or absent value field (undefined value).
	HintNone Hint = iota
	HintLogical
	HintInteger
	HintFloat
	HintComplex
	HintString
)

// Span marks a half-open [From, To) byte range within the scanned buffer.
// Spans let downstream parsers consume delimited fields without copying.
type Span struct {
	From, To int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.To - s.From }

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool { return s.To <= s.From }

// In returns the bytes the span covers within buf.
func (s Span) In(buf []byte) []byte {
	if s.IsEmpty() {
		return nil
	}
	return buf[s.From:s.To]
}

// CardSpan is the result of scanning one card window. Field spans are
// absolute offsets into the buffer passed to ScanCard.
type CardSpan struct {
	Kind    Kind
	Hint    Hint
	Keyword Span // short keyword sans padding, or the HIERARCH long name
	Value   Span // exact value token, surrounding blanks excluded
	Comment Span // comment text, one leading space and trailing pad excluded
}

// ScanCard delimits the keyword, value, and comment fields of the card
// window starting at off. At most CardSize bytes are consumed; a shorter
// window behaves as if right-padded with spaces. Scanning at or past the
// end of buf yields the implicit END card.
func ScanCard(buf []byte, off int) (CardSpan, error) {
	if off < 0 {
		return CardSpan{}, fmt.Errorf("%w: offset %d", ErrBounds, off)
	}
	if off >= len(buf) {
		return CardSpan{Kind: KindEnd, Hint: HintNone}, nil
	}

	end := off + CardSize
	if end > len(buf) {
		end = len(buf)
	}
	n := end - off

	// Columns 1-8 hold the short keyword, right-padded with spaces.
	kwEnd := off + KeywordSize
	if kwEnd > end {
		kwEnd = end
	}
	kw := trimTrailing(buf, Span{From: off, To: kwEnd})

	switch {
	case kw.IsEmpty():
		return commentarySpan(buf, off, end, kw), nil

	case spanEquals(buf, kw, EndKeyword):
		// Trailing bytes after END are ignorable padding.
		return CardSpan{Kind: KindEnd, Hint: HintNone, Keyword: kw}, nil

	case spanEquals(buf, kw, CommentKeyword), spanEquals(buf, kw, HistoryKeyword):
		return commentarySpan(buf, off, end, kw), nil

	case spanEquals(buf, kw, HierarchKeyword):
		return scanHierarch(buf, off, end, kw)
	}

	// Multi-word keywords and keywords running past column 8 have no
	// short form; they escape under the HIERARCH rules without the
	// literal prefix.
	if spanHasSpace(buf, kw) ||
		(n > IndicatorOffset && buf[off+IndicatorOffset] != '=' && buf[off+IndicatorOffset] != ' ') {
		return scanLongName(buf, off, end)
	}

	if err := checkShortKeyword(buf, kw, off); err != nil {
		return CardSpan{}, err
	}

	// Non-commentary short keywords require "= " in columns 9-10. Bytes
	// beyond a short window count as spaces.
	if n <= IndicatorOffset || buf[off+IndicatorOffset] != '=' {
		return CardSpan{}, fmt.Errorf("%w: keyword %q", ErrNoIndicator, string(kw.In(buf)))
	}
	if n > IndicatorOffset+1 && buf[off+IndicatorOffset+1] != ' ' {
		return CardSpan{}, fmt.Errorf("%w: keyword %q", ErrNoIndicator, string(kw.In(buf)))
	}

	sp := CardSpan{Kind: KindValue, Keyword: kw}
	vstart := off + ValueOffset
	if vstart > end {
		vstart = end
	}
	if err := delimitValue(buf, vstart, end, &sp); err != nil {
		return CardSpan{}, err
	}
	return sp, nil
}

// commentarySpan builds the span for COMMENT, HISTORY, and blank cards.
// Everything after the keyword field is comment text, trailing pad removed.
func commentarySpan(buf []byte, off, end int, kw Span) CardSpan {
	cstart := off + KeywordSize
	if cstart > end {
		cstart = end
	}
	return CardSpan{
		Kind:    KindCommentary,
		Hint:    HintNone,
		Keyword: kw,
		Comment: trimTrailing(buf, Span{From: cstart, To: end}),
	}
}

// scanHierarch locates the free-form name and the value indicator of a
// HIERARCH card. A HIERARCH card without an indicator is commentary.
func scanHierarch(buf []byte, off, end int, kw Span) (CardSpan, error) {
	nstart := off + HierarchNameOffset
	if nstart >= end {
		// "HIERARCH" with nothing after it: commentary with empty text.
		return CardSpan{Kind: KindHierarchComment, Keyword: kw}, nil
	}

	eq := -1
	for i := nstart; i < end; i++ {
		if buf[i] == '=' {
			eq = i
			break
		}
	}
	if eq < 0 {
		return CardSpan{
			Kind:    KindHierarchComment,
			Keyword: kw,
			Comment: trimTrailing(buf, Span{From: nstart, To: end}),
		}, nil
	}

	name := trimSurrounding(buf, Span{From: nstart, To: eq})
	if err := checkHierarchName(buf, name); err != nil {
		return CardSpan{}, err
	}

	sp := CardSpan{Kind: KindHierarch, Keyword: name}
	if err := delimitValue(buf, eq+1, end, &sp); err != nil {
		return CardSpan{}, err
	}
	return sp, nil
}

// scanLongName locates the value indicator of a keyword that has no
// short form: the name runs from column 1 to the '=' and is validated
// under the HIERARCH rules.
func scanLongName(buf []byte, off, end int) (CardSpan, error) {
	eq := -1
	for i := off; i < end; i++ {
		if buf[i] == '=' {
			eq = i
			break
		}
	}
	if eq < 0 {
		name := trimTrailing(buf, Span{From: off, To: end})
		return CardSpan{}, fmt.Errorf("%w: keyword %q", ErrNoIndicator, string(name.In(buf)))
	}

	name := trimSurrounding(buf, Span{From: off, To: eq})
	if err := checkHierarchName(buf, name); err != nil {
		return CardSpan{}, err
	}

	sp := CardSpan{Kind: KindHierarch, Keyword: name}
	if err := delimitValue(buf, eq+1, end, &sp); err != nil {
		return CardSpan{}, err
	}
	return sp, nil
}

// delimitValue splits [vstart, end) into the value token and the comment
// at the first unquoted '/', then classifies the value grammar.
func delimitValue(buf []byte, vstart, end int, sp *CardSpan) error {
	sep := -1
	inQuote := false
	for i := vstart; i < end; i++ {
		switch buf[i] {
		case '\'':
			inQuote = !inQuote
		case '/':
			if !inQuote {
				sep = i
			}
		}
		if sep >= 0 {
			break
		}
	}

	vend := end
	if sep >= 0 {
		vend = sep
		c := Span{From: sep + 1, To: end}
		// Exactly one leading space after '/' is separator styling, the
		// rest of the comment is preserved verbatim.
		if !c.IsEmpty() && buf[c.From] == ' ' {
			c.From++
		}
		sp.Comment = trimTrailing(buf, c)
	}

	sp.Value = trimSurrounding(buf, Span{From: vstart, To: vend})
	hint, err := classifyValue(buf, sp.Value)
	if err != nil {
		return err
	}
	sp.Hint = hint
	return nil
}

// classifyValue selects the value grammar from the token's leading byte.
func classifyValue(buf []byte, v Span) (Hint, error) {
	if v.IsEmpty() {
		return HintNone, nil
	}
	switch c := buf[v.From]; {
	case c == 'T' || c == 'F':
		return HintLogical, nil
	case c == '\'':
		return HintString, nil
	case c == '(':
		return HintComplex, nil
	case c == '+' || c == '-' || (c >= '0' && c <= '9'):
		for i := v.From; i < v.To; i++ {
			switch buf[i] {
			case '.', 'e', 'E', 'd', 'D':
				return HintFloat, nil
			}
		}
		return HintInteger, nil
	default:
		return HintNone, fmt.Errorf("%w: value starts with %q", ErrBadValue, string(buf[v.From]))
	}
}

// checkShortKeyword validates the charset of a short keyword. Interior
// spaces or characters outside [A-Z0-9_-] reject the keyword.
func checkShortKeyword(buf []byte, kw Span, off int) error {
	for i := kw.From; i < kw.To; i++ {
		if !isKeywordByte(buf[i]) {
			return fmt.Errorf("%w: %q", ErrBadKeyword, string(buf[off:kw.To]))
		}
	}
	return nil
}

// checkHierarchName validates a HIERARCH long name: non-empty words of
// legal keyword bytes (lowercase permitted) joined by single spaces.
func checkHierarchName(buf []byte, name Span) error {
	if name.IsEmpty() {
		return fmt.Errorf("%w: empty HIERARCH name", ErrBadKeyword)
	}
	prevSpace := false
	for i := name.From; i < name.To; i++ {
		c := buf[i]
		if c == ' ' {
			if prevSpace {
				return fmt.Errorf("%w: multiple spaces in %q", ErrBadKeyword, string(name.In(buf)))
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		if !isKeywordByte(c) && !(c >= 'a' && c <= 'z') {
			return fmt.Errorf("%w: %q", ErrBadKeyword, string(name.In(buf)))
		}
	}
	return nil
}

// isKeywordByte reports whether c is legal in a short FITS keyword.
func isKeywordByte(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}

// spanHasSpace reports whether the span contains a space byte.
func spanHasSpace(buf []byte, s Span) bool {
	for i := s.From; i < s.To; i++ {
		if buf[i] == ' ' {
			return true
		}
	}
	return false
}

// spanEquals compares the span's bytes against a literal keyword.
func spanEquals(buf []byte, s Span, lit string) bool {
	if s.Len() != len(lit) {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if buf[s.From+i] != lit[i] {
			return false
		}
	}
	return true
}

// trimTrailing shrinks the span past any trailing spaces.
func trimTrailing(buf []byte, s Span) Span {
	for s.To > s.From && buf[s.To-1] == ' ' {
		s.To--
	}
	return s
}

// trimSurrounding shrinks the span past leading and trailing spaces.
func trimSurrounding(buf []byte, s Span) Span {
	for s.From < s.To && buf[s.From] == ' ' {
		s.From++
	}
	return trimTrailing(buf, s)
}
