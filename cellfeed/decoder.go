// Package cellfeed turns a stream of UTF-8 bytes into the row.Cell
// sequence WriteCells expects: one Cell per glyph, wide glyphs tagged
// with their column width, and any zero-width combining runes folded
// into the glyph they modify rather than becoming cells of their own.
//
// Grounded on the teacher's own raw-text ingestion path
// (terminal/screen/screen.go's testWriteString and
// terminal/terminal.go's Print), which decode with
// golang.org/x/text/encoding/unicode and measure column width with
// github.com/mattn/go-runewidth; this package wires the same two
// dependencies into a reusable row.CellIterator instead of a
// throwaway test helper.
package cellfeed

import (
	"fmt"

	"github.com/hnimtadd/vtrow/attrrow"
	"github.com/hnimtadd/vtrow/row"
	dw "github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/unicode"
)

// Decoder is a row.CellIterator over a buffer of UTF-8 text, all of
// it painted with a single attribute. It fully decodes the buffer up
// front and only moves forward; it has no way to rewind to an earlier
// cell.
type Decoder struct {
	cells []row.Cell
	pos   int
}

// NewDecoder decodes text as UTF-8 and returns a Decoder over its
// glyphs, every cell carrying attr.
func NewDecoder(text []byte, attr attrrow.Attribute) (*Decoder, error) {
	dec := unicode.UTF8.NewDecoder()
	decoded, err := dec.Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("cellfeed: decode UTF-8: %w", err)
	}

	var cells []row.Cell
	for _, r := range string(decoded) {
		width := dw.RuneWidth(r)
		if width == 0 && len(cells) > 0 {
			// Zero-width combining mark: fold it into the previous
			// glyph's trailing code units rather than emitting a cell
			// of its own.
			last := &cells[len(cells)-1]
			last.Glyph = append(last.Glyph, encodeRune(r)...)
			continue
		}
		if width == 0 {
			// Leading zero-width rune with nothing to attach to: treat
			// it as an invisible single-width cell so it still
			// occupies a column, matching the teacher's "no grapheme
			// cluster support" stance of never silently dropping input.
			width = 1
		}
		cells = append(cells, row.Cell{
			Glyph: encodeRune(r),
			Width: width,
			Attr:  attr,
		})
	}

	return &Decoder{cells: cells}, nil
}

// encodeRune returns r's UTF-16 code units, matching the code-unit
// representation row.Row stores text in.
func encodeRune(r rune) []uint16 {
	if r <= 0xFFFF {
		return []uint16{uint16(r)}
	}
	r -= 0x10000
	return []uint16{
		uint16(0xD800 + (r >> 10)),
		uint16(0xDC00 + (r & 0x3FF)),
	}
}

func (d *Decoder) Done() bool     { return d.pos >= len(d.cells) }
func (d *Decoder) Cell() row.Cell { return d.cells[d.pos] }
func (d *Decoder) Advance()       { d.pos++ }

// Remaining returns the cells not yet consumed.
func (d *Decoder) Remaining() []row.Cell {
	return d.cells[d.pos:]
}
