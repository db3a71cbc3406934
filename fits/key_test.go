package fits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fitskit/pkg/types"
)

func TestParseKeyShort(t *testing.T) {
	key, canonical, err := ParseKey("simple")
	require.NoError(t, err)
	assert.Equal(t, KeySimple, key)
	assert.Equal(t, "SIMPLE", canonical)
	assert.Equal(t, "SIMPLE", key.String())

	key2, _, err := ParseKey("  SIMPLE ")
	require.NoError(t, err)
	assert.Equal(t, key, key2, "surrounding spaces do not change the key")
}

func TestParseKeyCharset(t *testing.T) {
	for _, name := range []string{"NAXIS1", "DATE-OBS", "T_START", "B2"} {
		key, canonical, err := ParseKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, canonical)
		assert.Equal(t, name, key.String())
	}
}

func TestParseKeyHierarchEscape(t *testing.T) {
	// Multi-word, over-long, and prefixed names all escape to the same
	// reserved key with the prefixed canonical name.
	for _, name := range []string{
		"ESO OBS EXECTIME",
		"HIERARCH ESO OBS EXECTIME",
	} {
		key, canonical, err := ParseKey(name)
		require.NoError(t, err, name)
		assert.True(t, key.IsHierarch())
		assert.Equal(t, "HIERARCH ESO OBS EXECTIME", canonical)
	}

	key, canonical, err := ParseKey("VERYLONGKEYWORD")
	require.NoError(t, err)
	assert.True(t, key.IsHierarch())
	assert.Equal(t, "HIERARCH VERYLONGKEYWORD", canonical)

	// Long names keep their case.
	_, canonical, err = ParseKey("ESO Tel Alt")
	require.NoError(t, err)
	assert.Equal(t, "HIERARCH ESO Tel Alt", canonical)
}

func TestParseKeyMalformed(t *testing.T) {
	bad := []string{
		"ESO  OBS",       // double interior space
		"HIERARCH  ESO",  // ambiguous spacing after the prefix
		"HIERARCH",       // the reserved escape word alone
		"BAD=KEY",
		"ESO OBS?",
	}
	for _, name := range bad {
		_, _, err := ParseKey(name)
		assert.ErrorIs(t, err, types.ErrMalformedKeyword, name)
	}
}

func TestKeyPredicates(t *testing.T) {
	assert.True(t, KeyEnd.IsEnd())
	assert.False(t, KeySimple.IsEnd())

	assert.True(t, KeyComment.IsCommentary())
	assert.True(t, KeyHistory.IsCommentary())
	assert.True(t, KeyBlank.IsCommentary())
	assert.False(t, KeyHierarch.IsCommentary())
	assert.False(t, KeySimple.IsCommentary())
}

func TestKeyIsNAXIS(t *testing.T) {
	cases := map[string]bool{
		"NAXIS":    true,
		"NAXIS1":   true,
		"NAXIS999": true,
		"NAXIS0":   false, // indices start at 1
		"NAXISX":   false,
		"BITPIX":   false,
	}
	for name, want := range cases {
		assert.Equal(t, want, packKey(name).IsNAXIS(), name)
	}
}

func TestKeyIsStructural(t *testing.T) {
	structural := []string{
		"SIMPLE", "BITPIX", "NAXIS", "NAXIS2", "XTENSION",
		"TFIELDS", "PCOUNT", "GCOUNT", "TTYPE5", "TFORM12", "TDIM3", "END",
	}
	for _, name := range structural {
		assert.True(t, packKey(name).IsStructural(), name)
	}
	plain := []string{"EXPTIME", "OBJECT", "TTYPE0", "TTYPE", "NAXIS01X"}
	for _, name := range plain {
		assert.False(t, packKey(name).IsStructural(), name)
	}
}
