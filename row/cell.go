package row

import "github.com/hnimtadd/vtrow/attrrow"

// Cell is one unit an iterator hands to WriteCells: a glyph of known
// column width plus the attribute token to paint it with.
type Cell struct {
	// Glyph is the glyph's code units. Its first element carries the
	// glyph; any further elements are trailer code units (the second
	// half of a surrogate pair, or trailing combining marks).
	Glyph []uint16
	// Width is the number of columns this glyph occupies, >= 1.
	Width int
	// Attr is the render attribute for every column this cell covers.
	Attr attrrow.Attribute
}

// CellIterator is the iterator contract WriteCells consumes (spec §6):
// a lazy, restartable forward sequence of cells that exposes
// "exhausted" as a terminal state. It mirrors a C++ forward iterator
// (peek-then-advance) rather than a combined next-or-done call,
// because WriteCells must be able to look at a cell, decide it
// doesn't fit the remaining width, and leave it unconsumed for the
// caller to deal with (e.g. start a new row on line wrap).
type CellIterator interface {
	// Done reports whether the sequence is exhausted. Once true, it
	// stays true.
	Done() bool
	// Cell returns the cell at the current position. Only valid when
	// Done reports false.
	Cell() Cell
	// Advance moves past the current cell.
	Advance()
}

// SliceIterator is a CellIterator over an in-memory slice of cells,
// useful for tests and for small, fully-buffered writes.
type SliceIterator struct {
	cells []Cell
	pos   int
}

// NewSliceIterator returns a CellIterator over cells.
func NewSliceIterator(cells []Cell) *SliceIterator {
	return &SliceIterator{cells: cells}
}

func (s *SliceIterator) Done() bool { return s.pos >= len(s.cells) }
func (s *SliceIterator) Cell() Cell { return s.cells[s.pos] }
func (s *SliceIterator) Advance()   { s.pos++ }

// Remaining returns the cells not yet consumed.
func (s *SliceIterator) Remaining() []Cell {
	return s.cells[s.pos:]
}

// DbcsAttribute classifies a column within the glyph occupying it
// (spec §4.1, Glossary).
type DbcsAttribute int

const (
	DbcsSingle DbcsAttribute = iota
	DbcsLeading
	DbcsTrailing
)

func (d DbcsAttribute) String() string {
	switch d {
	case DbcsSingle:
		return "single"
	case DbcsLeading:
		return "leading"
	case DbcsTrailing:
		return "trailing"
	default:
		return "unknown"
	}
}

// DelimiterClass classifies a column's glyph for word-navigation
// purposes (spec §4.1).
type DelimiterClass int

const (
	ControlChar DelimiterClass = iota
	DelimiterChar
	RegularChar
)

// LineRendition is the double-width/double-height rendition a line can
// be placed under (DECDHL/DECDWL), spec §3.
type LineRendition int

const (
	SingleWidthSingleHeight LineRendition = iota
	DoubleWidthSingleHeight
	DoubleHeightTop
	DoubleHeightBottom
)
