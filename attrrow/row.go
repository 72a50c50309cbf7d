// Package attrrow implements the AttributeRow contract (spec §4.2): a
// column-indexed run-length store of render attributes, kept at the
// same logical width as its owning Row.
//
// Column-to-attribute is a much simpler map than ColumnIndex: a
// column position in the AttributeRow maps 1:1 to a row column, there
// is no code-unit/glyph-width duality to resolve (§9 of spec.md notes
// the text plane and the attribute plane are kept parallel precisely
// because they compress along different axes). What the AttributeRow
// does share with the teacher's design is cell-attribute interning:
// the teacher's style package assigns repeated Style values a shared,
// de-duplicated ID (terminal/style/style.go + terminal/style/id), and
// this package does the same for Attribute values via the intern
// package, so that a run of 80 identically-styled columns costs one
// stored attribute, not 80.
package attrrow

import (
	"github.com/hnimtadd/vtrow/intern"
	"github.com/hnimtadd/vtrow/rle"
)

// Row is an AttributeRow.
type Row struct {
	reg *intern.Set
	m   *rle.Map[intern.ID]
}

// NewRow returns an AttributeRow of the given width, every column
// holding fill.
func NewRow(width int, fill Attribute) (*Row, error) {
	reg := intern.New(intern.Options{})
	id := reg.Add(fill)
	m, err := rle.New[intern.ID](id, width)
	if err != nil {
		return nil, err
	}
	return &Row{reg: reg, m: m}, nil
}

// Size returns the number of columns the row covers.
func (r *Row) Size() int {
	return r.m.Size()
}

// AttrAt returns the attribute in effect at col. Out-of-range columns
// return the zero Attribute.
func (r *Row) AttrAt(col int) Attribute {
	cum := 0
	for _, run := range r.m.Runs() {
		if cum+int(run.Length) > col {
			return r.reg.Get(run.Value).(Attribute)
		}
		cum += int(run.Length)
	}
	return Default
}

// SetRange assigns attr to every column in [begin, end).
func (r *Row) SetRange(begin, end int, attr Attribute) error {
	if end <= begin {
		return nil
	}
	id := r.reg.Add(attr)
	return r.m.Replace(begin, end, []rle.Run[intern.ID]{{Value: id, Length: uint16(end - begin)}})
}

// Reset reinitializes every column (keeping the row's current width)
// to fill. It reports whether any column actually changed.
//
// Reset also discards the row's interned attribute registry: every ID
// the old run-length map referenced goes out of scope in the same
// step, so there is nothing left for the registry to hold onto. A row
// that gets Reset repeatedly (e.g. once per frame) without this would
// otherwise accumulate one interned entry per distinct attribute it
// had ever held, for as long as the row exists.
func (r *Row) Reset(fill Attribute) bool {
	before := r.m.Runs()
	changed := true
	if len(before) == 1 && int(before[0].Length) == r.m.Size() {
		// The registry is still live at this point, so the old run's
		// interned ID can still be resolved back to its Attribute.
		changed = r.reg.Get(before[0].Value).(Attribute) != fill
	}

	r.reg.Reset()
	id := r.reg.Add(fill)
	next, err := rle.New[intern.ID](id, r.m.Size())
	if err != nil {
		// Size was already valid for the existing map; this can only
		// happen if the row's width itself is out of range, which
		// would have been rejected when the row was constructed.
		panic(err)
	}
	r.m = next
	return changed
}

// Resize grows or shrinks the row to newWidth, extending with fill
// when growing.
func (r *Row) Resize(newWidth int, fill Attribute) error {
	id := r.reg.Add(fill)
	cur := r.m.Size()
	if newWidth <= cur {
		return r.m.ResizeTrailingExtent(newWidth, id)
	}
	// ResizeTrailingExtent would reuse the last run's attribute; growth
	// takes fill instead.
	tail, err := rle.New[intern.ID](id, newWidth-cur)
	if err != nil {
		return err
	}
	return r.m.Replace(cur, cur, tail.Runs())
}

// Equal reports whether a and b hold the same attribute at every
// column. Attribute tokens are compared by value, not by their
// (registry-local) interned ID, since two independently constructed
// rows assign IDs in whatever order they first saw each attribute.
func Equal(a, b *Row) bool {
	if a == nil || b == nil {
		return a == b
	}
	ar, br := a.m.Runs(), b.m.Runs()
	if len(ar) != len(br) {
		return false
	}
	for i := range ar {
		if ar[i].Length != br[i].Length {
			return false
		}
		if a.reg.Get(ar[i].Value).(Attribute) != b.reg.Get(br[i].Value).(Attribute) {
			return false
		}
	}
	return true
}
