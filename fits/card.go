package fits

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/types"
)

// Card is one immutable FITS header record: a keyword key, the full
// textual name (HIERARCH cards keep their long form), a type tag, the
// typed payload, and the trailing comment. Cards are freely shareable;
// "editing" a header replaces a card with a newly built one.
//
// Exactly one payload slot is populated according to the type tag. The
// unused slots hold fixed sentinels (false, zero, a NaN pair, "") and
// are never read.
type Card struct {
	key     Key
	typ     types.CardType
	name    string
	bval    bool
	ival    int64
	cval    complex128 // FLOAT reuses the real part
	sval    string
	comment string
}

// nanPair is the sentinel stored in the complex slot of non-numeric cards.
var nanPair = complex(math.NaN(), math.NaN())

func newCard(key Key, typ types.CardType, name, comment string) Card {
	return Card{key: key, typ: typ, name: name, cval: nanPair, comment: comment}
}

// ParseCard scans and parses one card from the window of at most 80
// bytes starting at off. It either returns a fully valid Card or fails;
// scanning at or past the end of buf yields the implicit END card.
func ParseCard(buf []byte, off int) (Card, error) {
	sp, err := format.ScanCard(buf, off)
	if err != nil {
		return Card{}, wrapFormatErr(err)
	}

	switch sp.Kind {
	case format.KindEnd:
		return newCard(KeyEnd, types.TypeEnd, format.EndKeyword, ""), nil

	case format.KindCommentary:
		name := string(sp.Keyword.In(buf))
		return newCard(packKey(name), types.TypeComment, name, decodeComment(sp.Comment.In(buf))), nil

	case format.KindHierarchComment:
		return newCard(KeyHierarch, types.TypeComment, format.HierarchKeyword,
			decodeComment(sp.Comment.In(buf))), nil

	case format.KindHierarch:
		name := format.HierarchKeyword + " " + string(sp.Keyword.In(buf))
		return parseValueCard(buf, sp, KeyHierarch, name)

	case format.KindValue:
		name := string(sp.Keyword.In(buf))
		return parseValueCard(buf, sp, packKey(name), name)

	default:
		return Card{}, fmt.Errorf("%w: unhandled card kind %d", types.ErrMalformedCard, sp.Kind)
	}
}

// parseValueCard dispatches the delimited value token to the grammar the
// scanner selected.
func parseValueCard(buf []byte, sp format.CardSpan, key Key, name string) (Card, error) {
	c := newCard(key, types.TypeUndefined, name, decodeComment(sp.Comment.In(buf)))
	tok := sp.Value.In(buf)

	switch sp.Hint {
	case format.HintNone:
		// Blank value field: explicitly undefined.
		return c, nil

	case format.HintLogical:
		v, err := format.ParseLogical(tok)
		if err != nil {
			return Card{}, wrapFormatErr(err)
		}
		c.typ = types.TypeLogical
		c.bval = v

	case format.HintInteger:
		v, err := format.ParseInteger(tok)
		if err != nil {
			return Card{}, wrapFormatErr(err)
		}
		c.typ = types.TypeInteger
		c.ival = v

	case format.HintFloat:
		v, err := format.ParseFloat(tok)
		if err != nil {
			return Card{}, wrapFormatErr(err)
		}
		c.typ = types.TypeFloat
		c.cval = complex(v, 0)

	case format.HintComplex:
		v, err := format.ParseComplex(tok)
		if err != nil {
			return Card{}, wrapFormatErr(err)
		}
		c.typ = types.TypeComplex
		c.cval = v

	case format.HintString:
		v, err := format.ParseString(tok)
		if err != nil {
			return Card{}, wrapFormatErr(err)
		}
		c.typ = types.TypeString
		c.sval = decodeText(v)

	default:
		return Card{}, fmt.Errorf("%w: unhandled value hint %d", types.ErrMalformedCard, sp.Hint)
	}
	return c, nil
}

// NewCard builds a card from a name, a value, and an optional comment.
// The type tag follows the value's shape: bool, any signed or unsigned
// integer, float32/64, complex64/128, or string. A nil value builds a
// commentary card (or the END sentinel for the END keyword); a
// types.Undefined value builds an explicitly undefined card. Commentary
// keywords and END accept only a nil value.
func NewCard(name string, value any, comment string) (Card, error) {
	key, canonical, err := ParseKey(name)
	if err != nil {
		return Card{}, err
	}
	if value != nil && (key.IsCommentary() || key.IsEnd()) {
		return Card{}, fmt.Errorf("%w: keyword %q cannot carry a value",
			types.ErrMalformedCard, canonical)
	}

	c := newCard(key, types.TypeUndefined, canonical, comment)
	switch v := value.(type) {
	case nil:
		if key.IsEnd() {
			c.typ = types.TypeEnd
			c.comment = ""
		} else {
			c.typ = types.TypeComment
		}
	case types.Undefined:
		// keep TypeUndefined
	case bool:
		c.typ = types.TypeLogical
		c.bval = v
	case int:
		c.typ, c.ival = types.TypeInteger, int64(v)
	case int8:
		c.typ, c.ival = types.TypeInteger, int64(v)
	case int16:
		c.typ, c.ival = types.TypeInteger, int64(v)
	case int32:
		c.typ, c.ival = types.TypeInteger, int64(v)
	case int64:
		c.typ, c.ival = types.TypeInteger, v
	case uint:
		return newIntegerCard(c, uint64(v))
	case uint8:
		c.typ, c.ival = types.TypeInteger, int64(v)
	case uint16:
		c.typ, c.ival = types.TypeInteger, int64(v)
	case uint32:
		c.typ, c.ival = types.TypeInteger, int64(v)
	case uint64:
		return newIntegerCard(c, v)
	case float32:
		c.typ = types.TypeFloat
		c.cval = complex(float64(v), 0)
	case float64:
		c.typ = types.TypeFloat
		c.cval = complex(v, 0)
	case complex64:
		c.typ = types.TypeComplex
		c.cval = complex128(v)
	case complex128:
		c.typ = types.TypeComplex
		c.cval = v
	case string:
		c.typ = types.TypeString
		c.sval = v
	default:
		return Card{}, fmt.Errorf("%w: unsupported value type %T", types.ErrConversion, value)
	}
	return c, nil
}

// newIntegerCard guards uint values against int64 overflow.
func newIntegerCard(c Card, v uint64) (Card, error) {
	if v > math.MaxInt64 {
		return Card{}, fmt.Errorf("%w: %d overflows int64", types.ErrConversion, v)
	}
	c.typ, c.ival = types.TypeInteger, int64(v)
	return c, nil
}

// MustCard is NewCard that panics on error, for static card tables.
func MustCard(name string, value any, comment string) Card {
	c, err := NewCard(name, value, comment)
	if err != nil {
		panic(err)
	}
	return c
}

// Key returns the packed keyword key.
func (c Card) Key() Key { return c.key }

// Type returns the card's type tag.
func (c Card) Type() types.CardType { return c.typ }

// Name returns the full textual keyword. HIERARCH cards carry the
// "HIERARCH " prefix; blank commentary cards return "".
func (c Card) Name() string { return c.name }

// Comment returns the raw trailing comment text.
func (c Card) Comment() string { return c.comment }

// Units returns the bracketed units part of the comment, if any.
func (c Card) Units() string {
	units, _ := format.SplitUnits(c.comment)
	return units
}

// Unitless returns the comment with any leading units part removed.
func (c Card) Unitless() string {
	_, unitless := format.SplitUnits(c.comment)
	return unitless
}

// wrapFormatErr maps low-level format errors onto the public typed
// error kinds.
func wrapFormatErr(err error) error {
	switch {
	case errors.Is(err, format.ErrBadKeyword):
		return &types.Error{Kind: types.ErrKindKeyword, Msg: "malformed keyword", Err: err}
	case errors.Is(err, format.ErrBounds):
		return &types.Error{Kind: types.ErrKindBounds, Msg: "scan position out of range", Err: err}
	default:
		return &types.Error{Kind: types.ErrKindCard, Msg: "malformed card", Err: err}
	}
}

// decodeComment converts raw comment bytes to a string, decoding any
// extended bytes as Latin-1.
func decodeComment(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return decodeText(string(b))
}

// decodeText maps extended (non-ASCII) bytes to UTF-8 via Latin-1.
// Header text is ASCII by the book, but comments in the wild carry
// accented characters in single-byte encodings.
func decodeText(s string) string {
	// Fast path: ASCII needs no decoding.
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}

// encodeText maps UTF-8 text back to single Latin-1 bytes, the inverse
// of decodeText. Text outside Latin-1 has no card representation.
func encodeText(s string) (string, error) {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s, nil
	}
	encoded, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not representable in a card", types.ErrConversion, s)
	}
	return encoded, nil
}
