package attrrow

import (
	"testing"

	"github.com/hnimtadd/vtrow/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bold() Attribute {
	return Attribute{Bold: true, ForegroundColor: Color{Type: ColorTypeRGB, RGB: color.RGB{R: 255}}}
}

func TestNewRowUniform(t *testing.T) {
	row, err := NewRow(10, Default)
	require.NoError(t, err)
	assert.Equal(t, 10, row.Size())
	for col := 0; col < 10; col++ {
		assert.Equal(t, Default, row.AttrAt(col))
	}
}

func TestSetRangeInterns(t *testing.T) {
	row, err := NewRow(10, Default)
	require.NoError(t, err)
	require.NoError(t, row.SetRange(2, 5, bold()))

	assert.Equal(t, Default, row.AttrAt(0))
	assert.Equal(t, bold(), row.AttrAt(2))
	assert.Equal(t, bold(), row.AttrAt(4))
	assert.Equal(t, Default, row.AttrAt(5))
}

func TestResetReportsChange(t *testing.T) {
	row, err := NewRow(5, Default)
	require.NoError(t, err)

	assert.False(t, row.Reset(Default))

	require.NoError(t, row.SetRange(0, 2, bold()))
	assert.True(t, row.Reset(Default))
	for col := 0; col < 5; col++ {
		assert.Equal(t, Default, row.AttrAt(col))
	}
}

func TestResizeGrowShrink(t *testing.T) {
	row, err := NewRow(5, Default)
	require.NoError(t, err)
	require.NoError(t, row.SetRange(0, 5, bold()))

	require.NoError(t, row.Resize(8, Default))
	assert.Equal(t, 8, row.Size())
	assert.Equal(t, bold(), row.AttrAt(4))
	assert.Equal(t, Default, row.AttrAt(7))

	require.NoError(t, row.Resize(3, Default))
	assert.Equal(t, 3, row.Size())
	assert.Equal(t, bold(), row.AttrAt(2))
}

func TestEqualComparesByValueNotID(t *testing.T) {
	a, err := NewRow(4, bold())
	require.NoError(t, err)
	// b sees Default first so its registry assigns different IDs than
	// a's, even though both end up holding the same attribute values.
	b, err := NewRow(4, Default)
	require.NoError(t, err)
	require.NoError(t, b.SetRange(0, 4, bold()))

	assert.True(t, Equal(a, b))

	require.NoError(t, b.SetRange(0, 1, Default))
	assert.False(t, Equal(a, b))
}
