package fits

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fitskit/pkg/types"
)

// card pads a card image to the full 80-byte record.
func card(s string) []byte {
	if len(s) < 80 {
		s += strings.Repeat(" ", 80-len(s))
	}
	return []byte(s)
}

func TestParseCardLogical(t *testing.T) {
	c, err := ParseCard(card("SIMPLE  =                    T / this is a FITS file"), 0)
	require.NoError(t, err)

	assert.Equal(t, "SIMPLE", c.Name())
	assert.Equal(t, KeySimple, c.Key())
	assert.Equal(t, types.TypeLogical, c.Type())
	assert.Equal(t, "this is a FITS file", c.Comment())

	v, err := c.Logical()
	require.NoError(t, err)
	assert.True(t, v)
}

func TestParseCardHierarch(t *testing.T) {
	c, err := ParseCard(card("HIERARCH ESO OBS EXECTIME = +2919 / Expected execution time"), 0)
	require.NoError(t, err)

	assert.True(t, c.Key().IsHierarch())
	assert.Equal(t, "HIERARCH ESO OBS EXECTIME", c.Name())
	assert.Equal(t, types.TypeInteger, c.Type())
	assert.Equal(t, "Expected execution time", c.Comment())

	v, err := c.Integer()
	require.NoError(t, err)
	assert.Equal(t, int64(2919), v)
}

func TestParseCardUnprefixedHierarch(t *testing.T) {
	// Long and multi-word keywords escape under HIERARCH even without
	// the literal prefix on the wire.
	c, err := ParseCard(card("LONGKEYWD = 12"), 0)
	require.NoError(t, err)
	assert.True(t, c.Key().IsHierarch())
	assert.Equal(t, "HIERARCH LONGKEYWD", c.Name())
	v, err := c.Integer()
	require.NoError(t, err)
	assert.Equal(t, int64(12), v)

	c, err = ParseCard(card("MY KEY  = 8"), 0)
	require.NoError(t, err)
	assert.True(t, c.Key().IsHierarch())
	assert.Equal(t, "HIERARCH MY KEY", c.Name())
	v, err = c.Integer()
	require.NoError(t, err)
	assert.Equal(t, int64(8), v)
}

func TestParseCardMalformed(t *testing.T) {
	_, err := ParseCard(card("NAXIS     1"), 0)
	assert.ErrorIs(t, err, types.ErrMalformedCard)

	_, err = ParseCard(card("bitpix  = 8"), 0)
	assert.ErrorIs(t, err, types.ErrMalformedKeyword)

	_, err = ParseCard(card("SIMPLE  = Q"), 0)
	assert.ErrorIs(t, err, types.ErrMalformedCard)

	_, err = ParseCard(nil, -1)
	assert.ErrorIs(t, err, types.ErrBounds)
}

func TestParseCardImplicitEnd(t *testing.T) {
	c, err := ParseCard(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, types.TypeEnd, c.Type())
	assert.True(t, c.Key().IsEnd())
}

func TestEncodeParseRoundTrip(t *testing.T) {
	cards := []Card{
		MustCard("SIMPLE", true, "conforming file"),
		MustCard("EXTEND", false, ""),
		MustCard("BITPIX", -32, "bits per pixel"),
		MustCard("NAXIS", int64(2), ""),
		MustCard("EXPTIME", 130.5, "[s] exposure time"),
		MustCard("SCALE", 2.0, "integral float stays float"),
		MustCard("GAINCPLX", complex(1.5, -2.25), "complex gain"),
		MustCard("OBJECT", "NGC 7078", "target name"),
		MustCard("OBSERVER", "O'HARA", "escaped quote"),
		MustCard("EMPTYSTR", "", ""),
		MustCard("PADDED", "trailing ", "one pad space survives"),
		MustCard("DATAMAX", types.Undefined{}, "no value recorded"),
		MustCard("COMMENT", nil, "free text remark"),
		MustCard("HISTORY", nil, "reprocessed 2002-04-01"),
		MustCard("", nil, "blank keyword commentary"),
		MustCard("ESO OBS EXECTIME", 2919, "Expected execution time"),
		MustCard("HIERARCH ESO Tel Alt", 59.769, "telescope altitude"),
		MustCard("MY KEY", 8, "two-word name"),
		MustCard("AUTHOR", "Müller", "observé"),
	}
	for _, want := range cards {
		rec, err := want.Encode()
		require.NoError(t, err, want.Name())
		require.Len(t, rec, 80)

		got, err := ParseCard(rec, 0)
		require.NoError(t, err, want.Name())
		assert.True(t, got.Equal(want), "round trip of %#v gave %#v", want, got)
	}
}

func TestEncodeFixedFormatAlignment(t *testing.T) {
	rec, err := MustCard("SIMPLE", true, "file does conform").Encode()
	require.NoError(t, err)
	// Fixed format: value right-justified to column 30 (index 29).
	assert.Equal(t, byte('T'), rec[29])
	assert.Equal(t, "SIMPLE  = ", string(rec[:10]))
}

func TestEncodeTruncatesLongComment(t *testing.T) {
	long := strings.Repeat("x", 200)
	rec, err := MustCard("KEY", 1, long).Encode()
	require.NoError(t, err)
	require.Len(t, rec, 80)

	got, err := ParseCard(rec, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(long, got.Comment()))
	assert.Less(t, len(got.Comment()), len(long))
}

func TestEncodeOversizedValueFails(t *testing.T) {
	c := MustCard("LONGTEXT", strings.Repeat("v", 100), "")
	_, err := c.Encode()
	assert.ErrorIs(t, err, types.ErrMalformedCard)
}

func TestNewCardEnd(t *testing.T) {
	c, err := NewCard("END", nil, "ignored")
	require.NoError(t, err)
	assert.Equal(t, types.TypeEnd, c.Type())
	assert.Empty(t, c.Comment())
}

func TestNewCardNumericWidths(t *testing.T) {
	for _, v := range []any{int8(7), int16(7), int32(7), int64(7), uint8(7), uint16(7), uint32(7), uint(7), uint64(7)} {
		c, err := NewCard("N", v, "")
		require.NoError(t, err)
		assert.Equal(t, types.TypeInteger, c.Type())
		got, err := c.Integer()
		require.NoError(t, err)
		assert.Equal(t, int64(7), got)
	}

	c, err := NewCard("F", float32(0.5), "")
	require.NoError(t, err)
	assert.Equal(t, types.TypeFloat, c.Type())

	_, err = NewCard("BIG", uint64(1)<<63, "")
	assert.ErrorIs(t, err, types.ErrConversion)

	_, err = NewCard("BAD", struct{}{}, "")
	assert.ErrorIs(t, err, types.ErrConversion)
}

func TestConversionPromotion(t *testing.T) {
	b := MustCard("B", true, "")
	i, err := b.Integer()
	require.NoError(t, err)
	assert.Equal(t, int64(1), i)
	f, err := b.Float()
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
	z, err := b.Complex()
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), z)

	n := MustCard("N", 42, "")
	f, err = n.Float()
	require.NoError(t, err)
	assert.Equal(t, 42.0, f)
	z, err = n.Complex()
	require.NoError(t, err)
	assert.Equal(t, complex(42, 0), z)
}

func TestConversionNarrowing(t *testing.T) {
	one := MustCard("ONE", 1, "")
	v, err := one.Logical()
	require.NoError(t, err)
	assert.True(t, v)

	two := MustCard("TWO", 2, "")
	_, err = two.Logical()
	assert.ErrorIs(t, err, types.ErrConversion)

	exact := MustCard("EXACT", 2.0, "")
	i, err := exact.Integer()
	require.NoError(t, err)
	assert.Equal(t, int64(2), i)

	frac := MustCard("FRAC", 2.5, "")
	_, err = frac.Integer()
	assert.ErrorIs(t, err, types.ErrConversion)

	realish := MustCard("REALISH", complex(3, 0), "")
	f, err := realish.Float()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)
	i, err = realish.Integer()
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)

	spun := MustCard("SPUN", complex(3, 1), "")
	_, err = spun.Float()
	assert.ErrorIs(t, err, types.ErrConversion)

	_, err = MustCard("N", 5, "").Text()
	assert.ErrorIs(t, err, types.ErrConversion)
	_, err = MustCard("S", "text", "").Integer()
	assert.ErrorIs(t, err, types.ErrConversion)
}

func TestConversionSentinels(t *testing.T) {
	for _, c := range []Card{
		MustCard("COMMENT", nil, "remark"),
		MustCard("BLANKVAL", types.Undefined{}, ""),
	} {
		_, err := c.Logical()
		assert.ErrorIs(t, err, types.ErrConversion, c.Name())
		_, err = c.Integer()
		assert.ErrorIs(t, err, types.ErrConversion, c.Name())
		_, err = c.Float()
		assert.ErrorIs(t, err, types.ErrConversion, c.Name())
		_, err = c.Complex()
		assert.ErrorIs(t, err, types.ErrConversion, c.Name())
		_, err = c.Text()
		assert.ErrorIs(t, err, types.ErrConversion, c.Name())
		assert.False(t, c.IsAssigned())
	}
}

func TestValue(t *testing.T) {
	assert.Equal(t, int64(8), MustCard("BITPIX", 8, "").Value())
	assert.Equal(t, 0.5, MustCard("F", 0.5, "").Value())
	assert.Equal(t, "x", MustCard("S", "x", "").Value())
	assert.Equal(t, types.Undefined{}, MustCard("U", types.Undefined{}, "").Value())
	assert.Nil(t, MustCard("COMMENT", nil, "c").Value())
}

func TestValueEquals(t *testing.T) {
	n := MustCard("N", 2, "")
	assert.True(t, n.ValueEquals(2))
	assert.True(t, n.ValueEquals(int64(2)))
	assert.True(t, n.ValueEquals(2.0))
	assert.True(t, n.ValueEquals(complex(2, 0)))
	assert.False(t, n.ValueEquals(3))
	assert.False(t, n.ValueEquals("2"))

	f := MustCard("F", 2.5, "")
	assert.False(t, f.ValueEquals(2))
	assert.True(t, f.ValueEquals(2.5))

	s := MustCard("S", "2", "")
	assert.False(t, s.ValueEquals(2))
	assert.True(t, s.ValueEquals("2"))

	// Card-to-card comparison promotes to the wider numeric type.
	assert.True(t, n.ValueEquals(MustCard("OTHER", 2.0, "different comment")))
	assert.False(t, n.ValueEquals(s))

	assert.True(t, MustCard("COMMENT", nil, "c").ValueEquals(nil))
	assert.True(t, MustCard("U", types.Undefined{}, "").ValueEquals(types.Undefined{}))
}

func TestCardUnits(t *testing.T) {
	c := MustCard("VELOCITY", 12.5, "[km/s] radial velocity")
	assert.Equal(t, "km/s", c.Units())
	assert.Equal(t, "radial velocity", c.Unitless())

	plain := MustCard("OBJECT", "M15", "target name")
	assert.Empty(t, plain.Units())
	assert.Equal(t, "target name", plain.Unitless())
}

func TestDecodeLatin1Comment(t *testing.T) {
	rec := card("OBSERVER= 'HARA    '           / observ")
	rec[36] = 0xE9 // é in Latin-1
	c, err := ParseCard(rec, 0)
	require.NoError(t, err)
	assert.Equal(t, "obsérv", c.Comment())
}

func TestEncodeRejectsUnmappableText(t *testing.T) {
	_, err := MustCard("KEY", 1, "star ★ marker").Encode()
	assert.ErrorIs(t, err, types.ErrConversion)

	_, err = MustCard("OBJECT", "★", "").Encode()
	assert.ErrorIs(t, err, types.ErrConversion)
}

func TestNewCardCommentaryRejectsValue(t *testing.T) {
	for _, name := range []string{"COMMENT", "HISTORY", "", "END"} {
		_, err := NewCard(name, 5, "")
		assert.ErrorIs(t, err, types.ErrMalformedCard, name)
	}
	_, err := NewCard("HISTORY", "text", "")
	assert.ErrorIs(t, err, types.ErrMalformedCard)

	// nil still builds the commentary and END forms.
	c, err := NewCard("COMMENT", nil, "remark")
	require.NoError(t, err)
	assert.Equal(t, types.TypeComment, c.Type())
	c, err = NewCard("END", nil, "")
	require.NoError(t, err)
	assert.Equal(t, types.TypeEnd, c.Type())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "SIMPLE  = T / conforming",
		MustCard("SIMPLE", true, "conforming").String())
	assert.Equal(t, "HIERARCH ESO OBS EXECTIME = 2919",
		MustCard("ESO OBS EXECTIME", 2919, "").String())
	assert.Equal(t, "COMMENT remark",
		MustCard("COMMENT", nil, "remark").String())
}
