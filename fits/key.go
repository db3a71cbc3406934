package fits

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/types"
)

// Key is the packed form of a short FITS keyword: the 8 space-padded
// uppercase ASCII bytes of the keyword, packed big-endian into a uint64.
// Packing is explicit and endianness-independent, so key equality and
// ordering are platform-independent and serializable. Two keys are equal
// iff their padded keyword bytes are equal.
//
// Keywords longer than 8 characters or containing interior spaces are not
// representable as a short key; they are escaped under the reserved
// KeyHierarch and keep their literal long name on the Card.
type Key uint64

// packKey packs up to 8 keyword bytes, right-padded with spaces.
func packKey(name string) Key {
	var b [format.KeywordSize]byte
	copy(b[:], name)
	for i := len(name); i < format.KeywordSize; i++ {
		b[i] = ' '
	}
	return Key(binary.BigEndian.Uint64(b[:]))
}

// Reserved and structural keys.
var (
	KeyBlank    = packKey("")
	KeyEnd      = packKey(format.EndKeyword)
	KeyComment  = packKey(format.CommentKeyword)
	KeyHistory  = packKey(format.HistoryKeyword)
	KeyHierarch = packKey(format.HierarchKeyword)
	KeySimple   = packKey("SIMPLE")
	KeyBitpix   = packKey("BITPIX")
	KeyNaxis    = packKey("NAXIS")
	KeyXtension = packKey("XTENSION")
	KeyTfields  = packKey("TFIELDS")
	KeyPcount   = packKey("PCOUNT")
	KeyGcount   = packKey("GCOUNT")
)

// ParseKey encodes a keyword name into its Key and canonical full name.
// Short names (at most 8 characters of [A-Z0-9_-], no interior space)
// are uppercased and encode directly. Longer names, names with interior
// spaces, and names already carrying the "HIERARCH " prefix encode to
// KeyHierarch with the canonical name prefixed by "HIERARCH ".
func ParseKey(name string) (Key, string, error) {
	trimmed := strings.Trim(name, " ")

	if rest, ok := strings.CutPrefix(trimmed, format.HierarchKeyword+" "); ok {
		return parseHierarchKey(rest, name)
	}
	if strings.EqualFold(trimmed, format.HierarchKeyword) {
		// The reserved escape word is not a keyword of its own.
		return 0, "", fmt.Errorf("%w: %q is reserved", types.ErrMalformedKeyword, trimmed)
	}
	if len(trimmed) > format.KeywordSize || strings.ContainsRune(trimmed, ' ') {
		return parseHierarchKey(trimmed, name)
	}

	upper := strings.ToUpper(trimmed)
	for i := 0; i < len(upper); i++ {
		if !isKeyByte(upper[i]) {
			return parseHierarchKey(trimmed, name)
		}
	}
	return packKey(upper), upper, nil
}

// parseHierarchKey validates a HIERARCH long name and returns the
// reserved key with the prefixed canonical name. Lowercase is permitted
// in long names; words are separated by single spaces.
func parseHierarchKey(rest, orig string) (Key, string, error) {
	if rest == "" || rest[0] == ' ' {
		return 0, "", fmt.Errorf("%w: ambiguous HIERARCH spacing in %q", types.ErrMalformedKeyword, orig)
	}
	prevSpace := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == ' ' {
			if prevSpace {
				return 0, "", fmt.Errorf("%w: multiple interior spaces in %q", types.ErrMalformedKeyword, orig)
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		if !isKeyByte(c) && !(c >= 'a' && c <= 'z') {
			return 0, "", fmt.Errorf("%w: invalid character %q in %q", types.ErrMalformedKeyword, string(c), orig)
		}
	}
	if prevSpace {
		return 0, "", fmt.Errorf("%w: trailing space in %q", types.ErrMalformedKeyword, orig)
	}
	return KeyHierarch, format.HierarchKeyword + " " + rest, nil
}

func isKeyByte(c byte) bool {
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

// String decodes the key back to its keyword text, trailing pad removed.
func (k Key) String() string {
	var b [format.KeywordSize]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	n := format.KeywordSize
	for n > 0 && b[n-1] == ' ' {
		n--
	}
	return string(b[:n])
}

// IsEnd reports whether the key is the END sentinel.
func (k Key) IsEnd() bool { return k == KeyEnd }

// IsHierarch reports whether the key is the reserved HIERARCH escape.
func (k Key) IsHierarch() bool { return k == KeyHierarch }

// IsCommentary reports whether the key alone marks a commentary keyword:
// COMMENT, HISTORY, or the blank keyword. A HIERARCH card is additionally
// commentary by its type, not its key; see Card.IsCommentary.
func (k Key) IsCommentary() bool {
	return k == KeyComment || k == KeyHistory || k == KeyBlank
}

// IsNAXIS reports whether the key is NAXIS or an indexed NAXISn, n >= 1.
func (k Key) IsNAXIS() bool {
	if k == KeyNaxis {
		return true
	}
	return k.hasIndexedPrefix("NAXIS")
}

// IsStructural reports whether the key defines FITS array or table
// structure: SIMPLE, BITPIX, NAXIS and NAXISn, XTENSION, TFIELDS,
// PCOUNT, GCOUNT, TTYPEn, TFORMn, TDIMn, and END. Indexed forms count
// only for index >= 1.
func (k Key) IsStructural() bool {
	switch k {
	case KeySimple, KeyBitpix, KeyNaxis, KeyXtension, KeyTfields, KeyPcount, KeyGcount, KeyEnd:
		return true
	}
	return k.hasIndexedPrefix("NAXIS") ||
		k.hasIndexedPrefix("TTYPE") ||
		k.hasIndexedPrefix("TFORM") ||
		k.hasIndexedPrefix("TDIM")
}

// hasIndexedPrefix reports whether the key decodes to prefix followed by
// a decimal index of at least 1 filling the rest of the keyword.
func (k Key) hasIndexedPrefix(prefix string) bool {
	var b [format.KeywordSize]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	if len(prefix) >= format.KeywordSize || string(b[:len(prefix)]) != prefix {
		return false
	}
	idx := 0
	i := len(prefix)
	for ; i < format.KeywordSize && b[i] != ' '; i++ {
		if b[i] < '0' || b[i] > '9' {
			return false
		}
		idx = idx*10 + int(b[i]-'0')
	}
	if i == len(prefix) {
		return false // no digits at all
	}
	for ; i < format.KeywordSize; i++ {
		if b[i] != ' ' {
			return false
		}
	}
	return idx >= 1
}
