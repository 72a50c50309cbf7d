package rle

import (
	"testing"

	"github.com/hnimtadd/vtrow/rowerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUniform(t *testing.T) {
	m, err := New[uint8](1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Size())
	assert.Equal(t, []Run[uint8]{{Value: 1, Length: 10}}, m.Runs())
}

func TestNewZeroLength(t *testing.T) {
	m, err := New[uint8](1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Size())
	assert.Empty(t, m.Runs())
}

func TestNewRejectsNegativeLength(t *testing.T) {
	_, err := New[uint8](1, -1)
	assert.ErrorIs(t, err, rowerr.ErrInvalidArgument)
}

// A length longer than a single run can hold is not a capacity error:
// it is just spread across multiple runs of the same value.
func TestNewSpansMultipleRunsPastSingleRunCapacity(t *testing.T) {
	m, err := New[uint8](1, maxRunLength+1)
	require.NoError(t, err)
	assert.Equal(t, maxRunLength+1, m.Size())
	assert.Greater(t, len(m.Runs()), 1)
}

func TestReplaceExactRun(t *testing.T) {
	m, _ := New[uint8](1, 10)
	err := m.Replace(3, 5, []Run[uint8]{{Value: 2, Length: 2}})
	require.NoError(t, err)
	assert.Equal(t, []Run[uint8]{{1, 3}, {2, 2}, {1, 5}}, m.Runs())
	assert.Equal(t, 10, m.Size())
}

func TestReplaceCoalescesEqualNeighbors(t *testing.T) {
	m, _ := New[uint8](1, 10)
	require.NoError(t, m.Replace(3, 5, []Run[uint8]{{Value: 1, Length: 2}}))
	// Replacing with the same value as its neighbors must collapse back
	// to a single run (canonical form, P1).
	assert.Equal(t, []Run[uint8]{{1, 10}}, m.Runs())
}

func TestReplaceAtBoundaries(t *testing.T) {
	m, _ := New[uint8](1, 10)
	require.NoError(t, m.Replace(0, 2, []Run[uint8]{{Value: 3, Length: 2}}))
	assert.Equal(t, []Run[uint8]{{3, 2}, {1, 8}}, m.Runs())

	require.NoError(t, m.Replace(8, 10, []Run[uint8]{{Value: 5, Length: 2}}))
	assert.Equal(t, []Run[uint8]{{3, 2}, {1, 6}, {5, 2}}, m.Runs())
}

func TestReplaceInvalidRange(t *testing.T) {
	m, _ := New[uint8](1, 10)
	assert.Error(t, m.Replace(-1, 2, nil))
	assert.Error(t, m.Replace(5, 3, nil))
	assert.Error(t, m.Replace(0, 11, nil))
}

func TestReplaceDropsZeroLengthRuns(t *testing.T) {
	m, _ := New[uint8](1, 10)
	require.NoError(t, m.Replace(3, 5, []Run[uint8]{{Value: 2, Length: 1}, {Value: 0, Length: 0}, {Value: 1, Length: 1}}))
	assert.Equal(t, []Run[uint8]{{1, 3}, {2, 1}, {1, 6}}, m.Runs())
}

func TestResizeTrailingExtentGrow(t *testing.T) {
	m, _ := New[uint8](1, 5)
	require.NoError(t, m.ResizeTrailingExtent(8, 1))
	assert.Equal(t, []Run[uint8]{{1, 8}}, m.Runs())
}

func TestResizeTrailingExtentGrowDistinctLastRun(t *testing.T) {
	m, _ := New[uint8](1, 5)
	require.NoError(t, m.Replace(3, 5, []Run[uint8]{{Value: 9, Length: 2}}))
	require.NoError(t, m.ResizeTrailingExtent(8, 1))
	assert.Equal(t, []Run[uint8]{{1, 3}, {9, 5}}, m.Runs())
}

func TestResizeTrailingExtentShrink(t *testing.T) {
	m, _ := New[uint8](1, 5)
	require.NoError(t, m.Replace(3, 5, []Run[uint8]{{Value: 9, Length: 2}}))
	require.NoError(t, m.ResizeTrailingExtent(4, 1))
	assert.Equal(t, []Run[uint8]{{1, 3}, {9, 1}}, m.Runs())
}

func TestResizeTrailingExtentRejectsNegative(t *testing.T) {
	m, _ := New[uint8](1, 5)
	assert.ErrorIs(t, m.ResizeTrailingExtent(-1, 1), rowerr.ErrInvalidArgument)
}

func TestSplitRunAcrossCapacity(t *testing.T) {
	m, err := New[uint8](7, maxRunLength)
	require.NoError(t, err)
	require.NoError(t, m.ResizeTrailingExtent(maxRunLength+100, 7))
	runs := m.Runs()
	total := 0
	for _, r := range runs {
		total += int(r.Length)
		assert.Equal(t, uint8(7), r.Value)
	}
	assert.Equal(t, maxRunLength+100, total)
	assert.Greater(t, len(runs), 1)
}

func TestEqual(t *testing.T) {
	a, _ := New[uint8](1, 5)
	b, _ := New[uint8](1, 5)
	assert.True(t, Equal(a, b))

	require.NoError(t, b.Replace(2, 3, []Run[uint8]{{Value: 2, Length: 1}}))
	assert.False(t, Equal(a, b))
}

func TestGenericOverNonByteValue(t *testing.T) {
	// The attribute row instantiates Map over a uint64 interned ID, not
	// a byte, so the generic parameter must carry values that don't
	// fit in uint8.
	m, err := New[uint64](1<<40, 4)
	require.NoError(t, err)
	require.NoError(t, m.Replace(1, 3, []Run[uint64]{{Value: 1 << 41, Length: 2}}))
	assert.Equal(t, []Run[uint64]{{1 << 40, 1}, {1 << 41, 2}, {1 << 40, 1}}, m.Runs())
}
