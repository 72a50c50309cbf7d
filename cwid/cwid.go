// Package cwid implements ColumnIndex: a RunLengthMap from code-unit
// index to the number of columns the code unit at that position
// contributes. The special value 0 marks a trailer code unit
// belonging to the preceding glyph.
package cwid

import (
	"github.com/hnimtadd/vtrow/rle"
)

// spaceWidth is the column width a single plain code unit (an ASCII
// space, or any as-yet-unwritten cell) occupies.
const spaceWidth uint8 = 1

// Index is a ColumnIndex. The zero value is not valid; use New.
type Index struct {
	m *rle.Map[uint8]
}

// New returns a ColumnIndex over a row of the given number of code
// units, each contributing one column (i.e. a blank row).
func New(codeUnits int) (*Index, error) {
	m, err := rle.New[uint8](spaceWidth, codeUnits)
	if err != nil {
		return nil, err
	}
	return &Index{m: m}, nil
}

// Size returns the number of code units the index covers. This is
// always equal to the length of the row's text data (invariant I1).
func (idx *Index) Size() int {
	return idx.m.Size()
}

// Runs returns a copy of the index's runs.
func (idx *Index) Runs() []rle.Run[uint8] {
	return idx.m.Runs()
}

// Replace substitutes the code-unit range [begin, end) with newRuns.
func (idx *Index) Replace(begin, end int, newRuns []rle.Run[uint8]) error {
	return idx.m.Replace(begin, end, newRuns)
}

// ResizeTrailingExtent extends or truncates the index so its size
// equals newLen. Growth reuses the column value of the index's last
// run (single-column code units only when that run holds value 1, as
// in a blank row); an empty index grows with single-column units.
func (idx *Index) ResizeTrailingExtent(newLen int) error {
	return idx.m.ResizeTrailingExtent(newLen, spaceWidth)
}

// Lookup is the result of resolving a column to its underlying
// code-unit range, as defined by spec §4.4 ("indicesForCol"):
//   - BeginCU/LenCU: the code-unit span of the glyph occupying the
//     queried column, including any trailer code units.
//   - OffsetInGlyph: how many columns into the glyph the queried
//     column is (0 for the first column of the glyph).
//   - CoveredCols: the total column width of the glyph; 0 if the
//     column is past the end of the index (out of bounds to the
//     right).
type Lookup struct {
	BeginCU       int
	LenCU         int
	OffsetInGlyph int
	CoveredCols   int
}

// IndicesForCol resolves a column into the code-unit range of the
// glyph that occupies it. If col is beyond the last materialized
// column, it returns the implied tail position with CoveredCols == 0.
func (idx *Index) IndicesForCol(col int) Lookup {
	runs := idx.m.Runs()

	cumCols := 0
	cumCU := 0
	for i, r := range runs {
		coveredByRun := int(r.Value) * int(r.Length)
		if cumCols+coveredByRun > col {
			value := int(r.Value)
			colsLeft := col - cumCols
			beginCU := cumCU + colsLeft/value

			lenCU := 1
			colsConsumedFromRun := colsLeft + value
			if colsConsumedFromRun >= coveredByRun && i+1 < len(runs) && runs[i+1].Value == 0 {
				lenCU += int(runs[i+1].Length)
			}

			return Lookup{
				BeginCU:       beginCU,
				LenCU:         lenCU,
				OffsetInGlyph: colsLeft % value,
				CoveredCols:   value,
			}
		}
		cumCols += coveredByRun
		cumCU += int(r.Length)
	}

	return Lookup{
		BeginCU:       cumCU,
		LenCU:         idx.m.Size() - cumCU,
		OffsetInGlyph: 0,
		CoveredCols:   0,
	}
}

// Equal reports structural equality, used only by tests.
func Equal(a, b *Index) bool {
	if a == nil || b == nil {
		return a == b
	}
	return rle.Equal(a.m, b.m)
}
