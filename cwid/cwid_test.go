package cwid

import (
	"testing"

	"github.com/hnimtadd/vtrow/rle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlank(t *testing.T, n int) *Index {
	t.Helper()
	idx, err := New(n)
	require.NoError(t, err)
	return idx
}

func TestLookupSingleWidthRun(t *testing.T) {
	idx := newBlank(t, 10)
	for col := 0; col < 10; col++ {
		l := idx.IndicesForCol(col)
		assert.Equal(t, Lookup{BeginCU: col, LenCU: 1, OffsetInGlyph: 0, CoveredCols: 1}, l)
	}
}

func TestLookupWideGlyph(t *testing.T) {
	idx := newBlank(t, 10)
	// Install a 2-col glyph (1 code unit) at code-unit 3, with the
	// glyph occupying columns 3-4.
	require.NoError(t, idx.Replace(3, 4, []rle.Run[uint8]{{Value: 2, Length: 1}}))

	l3 := idx.IndicesForCol(3)
	assert.Equal(t, Lookup{BeginCU: 3, LenCU: 1, OffsetInGlyph: 0, CoveredCols: 2}, l3)

	l4 := idx.IndicesForCol(4)
	assert.Equal(t, Lookup{BeginCU: 3, LenCU: 1, OffsetInGlyph: 1, CoveredCols: 2}, l4)
}

func TestLookupTrailerCodeUnits(t *testing.T) {
	idx := newBlank(t, 10)
	// A single-column glyph made of 3 code units: base + 2 combining
	// marks. Runs: [(1,1),(0,2)] at code-unit 0.
	require.NoError(t, idx.Replace(0, 1, []rle.Run[uint8]{{Value: 1, Length: 1}, {Value: 0, Length: 2}}))

	l := idx.IndicesForCol(0)
	assert.Equal(t, Lookup{BeginCU: 0, LenCU: 3, OffsetInGlyph: 0, CoveredCols: 1}, l)

	// Column 1 now starts at the run after the trailers.
	l1 := idx.IndicesForCol(1)
	assert.Equal(t, Lookup{BeginCU: 3, LenCU: 1, OffsetInGlyph: 0, CoveredCols: 1}, l1)
}

func TestLookupOutOfBounds(t *testing.T) {
	idx := newBlank(t, 5)
	l := idx.IndicesForCol(5)
	assert.Equal(t, Lookup{BeginCU: 5, LenCU: 0, OffsetInGlyph: 0, CoveredCols: 0}, l)
}

func TestResizeTrailingExtent(t *testing.T) {
	idx := newBlank(t, 5)
	require.NoError(t, idx.ResizeTrailingExtent(8))
	assert.Equal(t, 8, idx.Size())
	assert.Equal(t, []rle.Run[uint8]{{Value: 1, Length: 8}}, idx.Runs())

	require.NoError(t, idx.ResizeTrailingExtent(3))
	assert.Equal(t, 3, idx.Size())
}

func TestEqual(t *testing.T) {
	a := newBlank(t, 5)
	b := newBlank(t, 5)
	assert.True(t, Equal(a, b))
	require.NoError(t, b.Replace(1, 2, []rle.Run[uint8]{{Value: 2, Length: 1}}))
	assert.False(t, Equal(a, b))
}
