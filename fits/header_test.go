package fits

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fitskit/pkg/types"
)

func sampleHeader(t *testing.T) *Header {
	t.Helper()
	h, err := NewHeader(
		MustCard("SIMPLE", true, "conforming"),
		MustCard("BITPIX", -32, "bits per pixel"),
		MustCard("NAXIS", 2, ""),
		MustCard("NAXIS1", 1024, ""),
		MustCard("NAXIS2", 768, ""),
		MustCard("COMMENT", nil, "first remark"),
		MustCard("EXPTIME", 130.5, "[s] exposure time"),
		MustCard("COMMENT", nil, "second remark"),
	)
	require.NoError(t, err)
	return h
}

func TestNewHeaderUniqueness(t *testing.T) {
	_, err := NewHeader(
		MustCard("BITPIX", 8, ""),
		MustCard("BITPIX", 16, ""),
	)
	assert.ErrorIs(t, err, types.ErrUniqueness)

	// Commentary keywords repeat freely.
	h, err := NewHeader(
		MustCard("COMMENT", nil, "one"),
		MustCard("COMMENT", nil, "two"),
		MustCard("HISTORY", nil, "three"),
		MustCard("", nil, "four"),
	)
	require.NoError(t, err)
	assert.Equal(t, 4, h.Len())
}

func TestHeaderAddDropsEnd(t *testing.T) {
	h, err := NewHeader(MustCard("SIMPLE", true, ""), MustCard("END", nil, ""))
	require.NoError(t, err)
	assert.Equal(t, 1, h.Len())
}

func TestHeaderGetHasAt(t *testing.T) {
	h := sampleHeader(t)

	c, err := h.Get("bitpix")
	require.NoError(t, err)
	assert.Equal(t, "BITPIX", c.Name())

	_, err = h.Get("MISSING")
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.True(t, h.Has("NAXIS1"))
	assert.False(t, h.Has("NAXIS9"))

	c, err = h.At(0)
	require.NoError(t, err)
	assert.Equal(t, "SIMPLE", c.Name())
	_, err = h.At(h.Len())
	assert.ErrorIs(t, err, types.ErrBounds)
	_, err = h.At(-1)
	assert.ErrorIs(t, err, types.ErrBounds)

	// Get on a repeated commentary keyword returns the first occurrence.
	c, err = h.Get("COMMENT")
	require.NoError(t, err)
	assert.Equal(t, "first remark", c.Comment())
}

func TestHeaderSetUpsert(t *testing.T) {
	h := sampleHeader(t)
	pos := h.FindFirst(ByName("BITPIX"))
	require.Equal(t, 1, pos)

	// Existing non-commentary keyword: replaced in place.
	require.NoError(t, h.Set("BITPIX", 16, "rescaled"))
	assert.Equal(t, 1, h.FindFirst(ByName("BITPIX")))
	c, err := h.Get("BITPIX")
	require.NoError(t, err)
	assert.True(t, c.ValueEquals(16))
	assert.Equal(t, "rescaled", c.Comment())

	// New keyword: appended.
	n := h.Len()
	require.NoError(t, h.Set("OBJECT", "M15", ""))
	assert.Equal(t, n+1, h.Len())
	assert.Equal(t, n, h.FindFirst(ByName("OBJECT")))

	// Commentary names always append.
	require.NoError(t, h.Set("COMMENT", nil, "third remark"))
	assert.Equal(t, n+2, h.Len())

	assert.Error(t, h.Set("END", nil, ""))
}

func TestHeaderSetAt(t *testing.T) {
	h := sampleHeader(t)

	// Rewrite in place under a new keyword.
	require.NoError(t, h.SetAt(4, "NAXIS2B", 768, "renamed axis"))
	c, err := h.At(4)
	require.NoError(t, err)
	assert.Equal(t, "NAXIS2B", c.Name())
	assert.False(t, h.Has("NAXIS2"))
	assert.Equal(t, 4, h.FindFirst(ByName("NAXIS2B")))

	// Same keyword at the same position is a plain value edit.
	require.NoError(t, h.SetAt(4, "NAXIS2B", 512, ""))

	// A keyword already held elsewhere is rejected and nothing changes.
	err = h.SetAt(4, "BITPIX", 8, "")
	assert.ErrorIs(t, err, types.ErrUniqueness)
	c, err = h.At(4)
	require.NoError(t, err)
	assert.Equal(t, "NAXIS2B", c.Name())
	assert.True(t, c.ValueEquals(512))

	assert.ErrorIs(t, h.SetAt(h.Len(), "X", 1, ""), types.ErrBounds)
	assert.ErrorIs(t, h.SetAt(-1, "X", 1, ""), types.ErrBounds)
}

func TestHeaderFindBounds(t *testing.T) {
	h := sampleHeader(t)
	p := ByName("NOSUCH")

	// One past the end is a legal start that finds nothing.
	pos, err := h.FindNext(p, h.Len())
	require.NoError(t, err)
	assert.Equal(t, -1, pos)

	_, err = h.FindNext(p, h.Len()+1)
	assert.ErrorIs(t, err, types.ErrBounds)

	pos, err = h.FindPrev(p, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, pos)

	_, err = h.FindPrev(p, h.Len())
	assert.ErrorIs(t, err, types.ErrBounds)
}

func TestHeaderFindByKey(t *testing.T) {
	h := sampleHeader(t)
	c, err := h.Get("COMMENT")
	require.NoError(t, err)

	first := h.FindFirst(ByKey(c))
	last := h.FindLast(ByKey(c))
	assert.Equal(t, 5, first)
	assert.Equal(t, 7, last)

	next, err := h.FindNext(ByKey(c), first+1)
	require.NoError(t, err)
	assert.Equal(t, last, next)
}

func TestHeaderFindByRegexp(t *testing.T) {
	h := sampleHeader(t)
	naxis := h.Filter(ByRegexp(regexp.MustCompile(`^NAXIS\d+$`)))
	assert.Equal(t, 2, naxis.Len())
}

func TestMatchesIteration(t *testing.T) {
	h, err := NewHeader(
		MustCard("COMMENT", nil, "one"),
		MustCard("SIMPLE", true, ""),
		MustCard("COMMENT", nil, "two"),
		MustCard("COMMENT", nil, "three"),
	)
	require.NoError(t, err)

	m := h.Matches(ByName("COMMENT"))
	var comments []string
	var positions []int
	for m.Next() {
		comments = append(comments, m.Card().Comment())
		positions = append(positions, m.Pos())
	}
	assert.Equal(t, []string{"one", "two", "three"}, comments)
	assert.Equal(t, []int{0, 2, 3}, positions)

	// Restartable.
	m.Reset()
	assert.Len(t, m.Collect(), 3)

	// Reverse yields the same matches backward; double reverse restores
	// the original order.
	rev := h.Matches(ByName("COMMENT")).Reverse()
	got := rev.Collect()
	require.Len(t, got, 3)
	assert.Equal(t, "three", got[0].Comment())
	assert.Equal(t, "one", got[2].Comment())

	again := rev.Reverse().Collect()
	require.Len(t, again, 3)
	assert.Equal(t, "one", again[0].Comment())
}

func TestHeaderFilterPrune(t *testing.T) {
	h := sampleHeader(t)

	structural := h.Filter(ByFunc(func(c Card) bool { return c.Key().IsStructural() }))
	assert.Equal(t, 5, structural.Len())
	// The source is untouched.
	assert.Equal(t, 8, h.Len())

	removed := h.Prune(ByName("COMMENT"))
	assert.Equal(t, 2, removed)
	assert.Equal(t, 6, h.Len())
	assert.False(t, h.Has("COMMENT"))

	// Index positions survive the compaction.
	assert.Equal(t, 5, h.FindFirst(ByName("EXPTIME")))
	c, err := h.Get("EXPTIME")
	require.NoError(t, err)
	assert.True(t, c.ValueEquals(130.5))

	assert.Zero(t, h.Prune(ByName("COMMENT")))
}

func TestHeaderCloneIsolation(t *testing.T) {
	h := sampleHeader(t)
	dup := h.Clone()

	require.NoError(t, dup.Set("BITPIX", 64, ""))
	require.NoError(t, dup.Set("EXTRA", 1, ""))

	c, err := h.Get("BITPIX")
	require.NoError(t, err)
	assert.True(t, c.ValueEquals(-32))
	assert.False(t, h.Has("EXTRA"))
	assert.Equal(t, h.Len()+1, dup.Len())
}

func TestHeaderReset(t *testing.T) {
	h := sampleHeader(t)
	h.Reset()
	assert.Zero(t, h.Len())
	assert.False(t, h.Has("SIMPLE"))
	require.NoError(t, h.Add(MustCard("SIMPLE", true, "")))
	assert.Equal(t, 1, h.Len())
}

func TestHeaderCardsCopy(t *testing.T) {
	h := sampleHeader(t)
	cards := h.Cards()
	require.Len(t, cards, h.Len())
	cards[0] = MustCard("TAMPERED", 1, "")
	c, err := h.At(0)
	require.NoError(t, err)
	assert.Equal(t, "SIMPLE", c.Name())
}

func TestByNameCanonicalizes(t *testing.T) {
	h := sampleHeader(t)
	assert.Equal(t, 0, h.FindFirst(ByName("simple")))

	hk, err := NewHeader(MustCard("ESO OBS EXECTIME", 2919, ""))
	require.NoError(t, err)
	assert.Equal(t, 0, hk.FindFirst(ByName("ESO OBS EXECTIME")))
	assert.Equal(t, 0, hk.FindFirst(ByName("HIERARCH ESO OBS EXECTIME")))
}
