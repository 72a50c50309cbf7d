// Package row implements Row: the fixed-width, damage-aware screen
// buffer row described by spec.md — the reconciliation of a
// code-unit text buffer, a ColumnIndex mapping code units to the
// columns they occupy, and a parallel AttributeRow.
package row

import (
	"fmt"
	"math"
	"slices"

	"github.com/hnimtadd/vtrow/attrrow"
	"github.com/hnimtadd/vtrow/cwid"
	"github.com/hnimtadd/vtrow/logger"
	"github.com/hnimtadd/vtrow/rle"
	"github.com/hnimtadd/vtrow/rowerr"
)

// ParentBuffer is an opaque, non-owning back-reference a Row can carry
// to whatever owns it (spec §9's "cyclic parent handle" note). A Row
// never calls back into it; the handle exists purely so callers that
// walk a collection of rows can recover the owning buffer without the
// buffer needing to track rows by pointer identity.
type ParentBuffer interface {
	Width() int
}

// Row is one line of a screen buffer: a code-unit text buffer paired
// with a ColumnIndex and an AttributeRow, kept mutually consistent by
// every write through WriteGlyphAtMeasured.
type Row struct {
	width  int
	data   []uint16
	cwid   *cwid.Index
	attrs  *attrrow.Row
	parent ParentBuffer
	log    logger.Logger

	fillAttr         attrrow.Attribute
	lineRendition    LineRendition
	wrapForced       bool
	doubleBytePadded bool
	maxRightColumn   int
}

// Option configures a Row at construction time.
type Option func(*Row)

// WithLogger overrides the row's logger, which otherwise defaults to
// logger.DefaultLogger.
func WithLogger(l logger.Logger) Option {
	return func(r *Row) { r.log = l }
}

// New returns a blank Row of the given width: every column holds a
// single ASCII space under fill.
func New(width int, fill attrrow.Attribute, parent ParentBuffer, opts ...Option) (*Row, error) {
	if width <= 0 {
		return nil, fmt.Errorf("vtrow: row: %w: width must be positive, got %d", rowerr.ErrInvalidArgument, width)
	}
	if width > math.MaxUint16 {
		return nil, fmt.Errorf("vtrow: row: %w: width %d exceeds the largest row this implementation represents (65535)", rowerr.ErrCapacityExceeded, width)
	}

	idx, err := cwid.New(width)
	if err != nil {
		return nil, err
	}
	attrs, err := attrrow.NewRow(width, fill)
	if err != nil {
		return nil, err
	}

	data := make([]uint16, width)
	for i := range data {
		data[i] = ' '
	}

	r := &Row{
		width:    width,
		data:     data,
		cwid:     idx,
		attrs:    attrs,
		parent:   parent,
		log:      logger.DefaultLogger,
		fillAttr: fill,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Size returns the row's width in columns.
func (r *Row) Size() int { return r.width }

// GetText returns the row's raw code-unit buffer. Callers must not
// mutate the returned slice.
func (r *Row) GetText() []uint16 { return r.data }

// GetAttrRow returns the row's parallel AttributeRow.
func (r *Row) GetAttrRow() *attrrow.Row { return r.attrs }

// GetLineRendition returns the row's current double-width/height mode.
func (r *Row) GetLineRendition() LineRendition { return r.lineRendition }

// SetLineRendition sets the row's double-width/height mode.
func (r *Row) SetLineRendition(lr LineRendition) { r.lineRendition = lr }

// WasWrapForced reports whether the last write to reach the right
// edge of the row was a forced line wrap rather than an explicit
// newline.
func (r *Row) WasWrapForced() bool { return r.wrapForced }

// SetWrapForced overrides the wrap-forced flag directly, for callers
// reconstructing a row's state outside WriteCells.
func (r *Row) SetWrapForced(v bool) { r.wrapForced = v }

// WasDoubleBytePadded reports whether the row's last column holds a
// padding space left behind because a double-width glyph did not fit.
func (r *Row) WasDoubleBytePadded() bool { return r.doubleBytePadded }

// SetDoubleBytePadded overrides the double-byte-padded flag directly.
func (r *Row) SetDoubleBytePadded(v bool) { r.doubleBytePadded = v }

// MeasureRight returns the exclusive upper bound of columns the row
// has ever written to (the high-water mark used to trim trailing
// blanks when rendering).
func (r *Row) MeasureRight() int { return r.maxRightColumn }

// GlyphAt returns the code units of the glyph occupying col, including
// any trailing combining marks. If col is beyond the last
// materialized column, it returns the implied tail of the buffer;
// callers must not read past what they asked for.
func (r *Row) GlyphAt(col int) []uint16 {
	l := r.cwid.IndicesForCol(col)
	return r.data[l.BeginCU : l.BeginCU+l.LenCU]
}

// DbcsAttrAt classifies col within the glyph occupying it.
func (r *Row) DbcsAttrAt(col int) DbcsAttribute {
	l := r.cwid.IndicesForCol(col)
	switch {
	case l.CoveredCols == 1:
		return DbcsSingle
	case l.OffsetInGlyph >= 1:
		return DbcsTrailing
	default:
		return DbcsLeading
	}
}

// DelimiterClassAt classifies the glyph at col using delimiters as the
// set of runes considered word-delimiting punctuation; anything else
// non-control is a regular char. It errors if col is outside the row.
func (r *Row) DelimiterClassAt(col int, delimiters string) (DelimiterClass, error) {
	if col < 0 || col >= r.width {
		return ControlChar, fmt.Errorf("vtrow: row: %w: col %d out of range [0, %d)", rowerr.ErrInvalidArgument, col, r.width)
	}
	glyph := r.GlyphAt(col)
	if len(glyph) == 0 {
		return ControlChar, nil
	}
	c := rune(glyph[0])
	switch {
	case c <= 0x20:
		return ControlChar, nil
	case slices.Contains([]rune(delimiters), c):
		return DelimiterChar, nil
	default:
		return RegularChar, nil
	}
}

// Reset reinitializes every column to a single blank space under fill,
// clears wrap/padding/rendition state, and reports whether anything
// actually changed.
func (r *Row) Reset(fill attrrow.Attribute) bool {
	blank := make([]uint16, r.width)
	for i := range blank {
		blank[i] = ' '
	}
	freshIdx, err := cwid.New(r.width)
	if err != nil {
		panic(err) // r.width was already validated at construction
	}

	changed := !slices.Equal(r.data, blank) ||
		!cwid.Equal(r.cwid, freshIdx) ||
		r.wrapForced || r.doubleBytePadded || r.maxRightColumn != 0 ||
		r.lineRendition != SingleWidthSingleHeight

	r.data = blank
	r.cwid = freshIdx
	if r.attrs.Reset(fill) {
		changed = true
	}
	r.fillAttr = fill
	r.wrapForced = false
	r.doubleBytePadded = false
	r.maxRightColumn = 0
	r.lineRendition = SingleWidthSingleHeight

	return changed
}

// ClearColumn overwrites the single column at col with a blank space,
// repairing any glyph it damages the same way any other write would.
func (r *Row) ClearColumn(col int) error {
	_, _, err := r.WriteGlyphAtMeasured(col, 1, []uint16{' '})
	return err
}

// WriteGlyphAtMeasured is the damage-aware overwrite primitive (spec
// §4.3): it writes glyph, covering ncols columns starting at col,
// repairing any glyph it partially overwrites on either edge by
// padding the overwritten span out to whole-glyph boundaries with
// spaces. It returns the code-unit position immediately after the
// written glyph and the column immediately after ncols.
func (r *Row) WriteGlyphAtMeasured(col, ncols int, glyph []uint16) (int, int, error) {
	if ncols <= 0 {
		return 0, 0, fmt.Errorf("vtrow: row: %w: ncols must be positive, got %d", rowerr.ErrInvalidArgument, ncols)
	}
	if len(glyph) == 0 {
		return 0, 0, fmt.Errorf("vtrow: row: %w: glyph must have at least one code unit", rowerr.ErrInvalidArgument)
	}
	if col < 0 {
		return 0, 0, fmt.Errorf("vtrow: row: %w: col %d must be non-negative", rowerr.ErrInvalidArgument, col)
	}

	// col+ncols is deliberately not bounds-checked against the row's
	// width here (spec §4.3): this primitive writes as requested.
	// Refusing or clipping an overlong write is the caller's job —
	// WriteCells does it via rightLimit below.
	lookup := r.cwid.IndicesForCol(col)
	begin := lookup.BeginCU
	length := lookup.LenCU

	minDamageCol := col - lookup.OffsetInGlyph
	maxDamageColExcl := minDamageCol + lookup.CoveredCols

	for maxDamageColExcl < col+ncols {
		next := r.cwid.IndicesForCol(maxDamageColExcl)
		if next.CoveredCols == 0 {
			// maxDamageColExcl has reached the row's materialized
			// extent; a well-behaved caller never asks for more than
			// that (callers are expected to clip via WriteCells'
			// rightLimit), so there is nothing further to absorb.
			break
		}
		length += next.LenCU
		maxDamageColExcl += next.CoveredCols
	}

	exact := minDamageCol == col && maxDamageColExcl == col+ncols

	var replacement []uint16
	var newRuns []rle.Run[uint8]
	leftPad := 0

	if exact {
		replacement = glyph
		newRuns = append(newRuns, rle.Run[uint8]{Value: uint8(ncols), Length: 1})
		if len(glyph) > 1 {
			newRuns = append(newRuns, rle.Run[uint8]{Value: 0, Length: uint16(len(glyph) - 1)})
		}
	} else {
		leftPad = col - minDamageCol
		rightPad := maxDamageColExcl - (col + ncols)

		replacement = make([]uint16, 0, leftPad+len(glyph)+rightPad)
		for i := 0; i < leftPad; i++ {
			replacement = append(replacement, ' ')
		}
		replacement = append(replacement, glyph...)
		for i := 0; i < rightPad; i++ {
			replacement = append(replacement, ' ')
		}

		if leftPad > 0 {
			newRuns = append(newRuns, rle.Run[uint8]{Value: 1, Length: uint16(leftPad)})
		}
		newRuns = append(newRuns, rle.Run[uint8]{Value: uint8(ncols), Length: 1})
		if len(glyph) > 1 {
			newRuns = append(newRuns, rle.Run[uint8]{Value: 0, Length: uint16(len(glyph) - 1)})
		}
		if rightPad > 0 {
			newRuns = append(newRuns, rle.Run[uint8]{Value: 1, Length: uint16(rightPad)})
		}

		r.log.Debug("row: damage repair", "col", col, "ncols", ncols,
			"minDamageCol", minDamageCol, "maxDamageColExcl", maxDamageColExcl)
	}

	newData := make([]uint16, 0, len(r.data)-length+len(replacement))
	newData = append(newData, r.data[:begin]...)
	newData = append(newData, replacement...)
	newData = append(newData, r.data[begin+length:]...)
	r.data = newData

	if err := r.cwid.Replace(begin, begin+length, newRuns); err != nil {
		return 0, 0, err
	}
	if remaining := len(r.data) - r.cwid.Size(); remaining > 0 {
		// The write landed short of the buffer's degenerate tail (spec
		// §4.3 step 7): the code units past it were never materialized
		// into cwid runs at all. They are implied plain spaces, so the
		// fill value here must be the explicit single-column value 1 —
		// not whatever value this write's own trailing run just took
		// on, which is what the generic last-run-reusing
		// ResizeTrailingExtent would pick.
		fill := []rle.Run[uint8]{{Value: 1, Length: uint16(remaining)}}
		if err := r.cwid.Replace(r.cwid.Size(), r.cwid.Size(), fill); err != nil {
			return 0, 0, err
		}
	}

	r.maxRightColumn = max(r.maxRightColumn, maxDamageColExcl)

	return begin + leftPad + len(glyph), col + ncols, nil
}

// WriteCells consumes cells from it, writing each at increasing
// columns starting at startCol, stopping when it is exhausted or the
// next cell would not fit within rightLimit (the row's width, if
// nil). wrapFlag, if non-nil, becomes the row's wrap-forced state once
// the write stops. It returns it, left pointing at the first
// unconsumed cell.
func (r *Row) WriteCells(it CellIterator, startCol int, wrapFlag *bool, rightLimit *int) (CellIterator, error) {
	limit := r.width
	if rightLimit != nil {
		limit = *rightLimit
	}

	col := startCol
	for !it.Done() {
		cell := it.Cell()
		if cell.Width <= 0 {
			return it, fmt.Errorf("vtrow: row: %w: cell width must be positive, got %d", rowerr.ErrInvalidArgument, cell.Width)
		}
		if col+cell.Width > limit {
			break
		}

		_, colAfter, err := r.WriteGlyphAtMeasured(col, cell.Width, cell.Glyph)
		if err != nil {
			return it, err
		}
		if err := r.attrs.SetRange(col, colAfter, cell.Attr); err != nil {
			return it, err
		}

		col = colAfter
		it.Advance()
	}

	if wrapFlag != nil {
		r.wrapForced = *wrapFlag
	}
	return it, nil
}

// Resize grows or shrinks the row to newWidth. Growth appends blank
// space columns under the row's current fill attribute; shrinking
// first repairs (via ClearColumn) any glyph that straddles the new
// right edge, so no half-glyph is ever left behind, then truncates.
func (r *Row) Resize(newWidth int) error {
	if newWidth <= 0 {
		return fmt.Errorf("vtrow: row: %w: width must be positive, got %d", rowerr.ErrInvalidArgument, newWidth)
	}
	if newWidth > math.MaxUint16 {
		return fmt.Errorf("vtrow: row: %w: width %d exceeds the largest row this implementation represents (65535)", rowerr.ErrCapacityExceeded, newWidth)
	}
	if newWidth == r.width {
		return nil
	}

	if newWidth > r.width {
		delta := newWidth - r.width
		oldLenCU := len(r.data)
		for i := 0; i < delta; i++ {
			r.data = append(r.data, ' ')
		}
		// Growth always appends plain, single-column spaces (spec
		// §4.1), regardless of what column width the row's current
		// rightmost run happens to hold. ResizeTrailingExtent reuses
		// the last run's value when the map isn't empty, which is
		// wrong here: an explicit value-1 run is required
		// so a wide glyph or trailer run at the old right edge doesn't
		// get mis-extended into the newly appended spaces.
		newRuns := []rle.Run[uint8]{{Value: 1, Length: uint16(delta)}}
		if err := r.cwid.Replace(oldLenCU, oldLenCU, newRuns); err != nil {
			return err
		}
		if err := r.attrs.Resize(newWidth, r.fillAttr); err != nil {
			return err
		}
		r.width = newWidth
		return nil
	}

	boundary := r.cwid.IndicesForCol(newWidth)
	if boundary.CoveredCols != 0 && boundary.OffsetInGlyph != 0 {
		start := newWidth - boundary.OffsetInGlyph
		for c := start; c < newWidth; c++ {
			if err := r.ClearColumn(c); err != nil {
				return err
			}
		}
		boundary = r.cwid.IndicesForCol(newWidth)
	}

	cut := boundary.BeginCU
	if boundary.CoveredCols == 0 {
		cut = len(r.data)
	}
	r.data = r.data[:cut]
	if err := r.cwid.Replace(cut, r.cwid.Size(), nil); err != nil {
		return err
	}
	if err := r.attrs.Resize(newWidth, r.fillAttr); err != nil {
		return err
	}

	r.width = newWidth
	r.maxRightColumn = min(r.maxRightColumn, newWidth)
	return nil
}

// Equal reports structural equality over exactly the fields spec §6
// designates as load-bearing for tests: text, ColumnIndex, attribute
// row, width, wrap-forced, and double-byte-padded. Line rendition is
// deliberately excluded, matching the original's operator==.
func Equal(a, b *Row) bool {
	if a == nil || b == nil {
		return a == b
	}
	return slices.Equal(a.data, b.data) &&
		cwid.Equal(a.cwid, b.cwid) &&
		attrrow.Equal(a.attrs, b.attrs) &&
		a.width == b.width &&
		a.wrapForced == b.wrapForced &&
		a.doubleBytePadded == b.doubleBytePadded
}
