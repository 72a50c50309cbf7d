// Package rle implements RunLengthMap: a compact ordered map from a
// contiguous range of integer positions to a value, stored as a
// sequence of (value, length) runs.
//
// It is the storage primitive behind the row engine's ColumnIndex and
// the attribute row: a column-width map and an attribute map are both,
// structurally, "a value that holds for N consecutive positions" —
// just over different value types (a small column-width byte for the
// former, an interned attribute ID for the latter). Grounded on the
// teacher pack's C++ analog, til::small_rle<uint8_t, uint16_t, 3> (see
// _examples/original_source/src/buffer/out/Row.hpp), generalized over
// the value type the way the teacher's own coordinate.Point[T] and
// utils.RotateOnce[T] are generalized over element type.
package rle

import (
	"math"

	"github.com/hnimtadd/vtrow/internal/utils"
	"github.com/hnimtadd/vtrow/rowerr"
)

// maxRunLength mirrors the 16-bit run length of the original's
// til::small_rle<uint8_t, uint16_t, 3>.
const maxRunLength = math.MaxUint16

// Run is one (value, length) pair: value holds for the next length
// positions.
type Run[V comparable] struct {
	Value  V
	Length uint16
}

// Map is a RunLengthMap. The zero value is an empty map of size 0.
type Map[V comparable] struct {
	runs []Run[V]
}

// New returns a Map of the given length, every position holding value.
// length is not bounded by a single run's 16-bit length field: splitRun
// spreads it across as many runs of value as necessary.
func New[V comparable](value V, length int) (*Map[V], error) {
	if length < 0 {
		return nil, rowerr.ErrInvalidArgument
	}
	m := &Map[V]{}
	m.runs = splitRun(value, length, m.runs)
	return m, nil
}

// Size returns the total number of positions covered by the map.
func (m *Map[V]) Size() int {
	total := 0
	for _, r := range m.runs {
		total += int(r.Length)
	}
	return total
}

// Runs returns a copy of the map's runs in order. Mutating the
// returned slice does not affect the map.
func (m *Map[V]) Runs() []Run[V] {
	out := make([]Run[V], len(m.runs))
	copy(out, m.runs)
	return out
}

// Replace substitutes the range [begin, end) with newRuns, merging
// with neighboring runs on both sides when values match, and splits
// away any run that would be too long to be represented canonically.
// newRuns with zero length are ignored. Replace always leaves the map
// in canonical form: no empty runs, no two adjacent runs with equal
// values.
func (m *Map[V]) Replace(begin, end int, newRuns []Run[V]) error {
	size := m.Size()
	if begin < 0 || end < begin || end > size {
		return rowerr.ErrInvalidArgument
	}

	before := m.prefix(begin)
	after := m.suffix(end)

	combined := make([]Run[V], 0, len(before)+len(newRuns)+len(after))
	combined = append(combined, before...)
	combined = append(combined, newRuns...)
	combined = append(combined, after...)

	m.runs = coalesce(combined)
	return nil
}

// ResizeTrailingExtent extends or truncates the last run so the map's
// total size equals newTotalLength. When extending, the value of the
// current last run is reused; growValue is only consulted if the map
// is currently empty, since then there is no run to reuse a value
// from.
func (m *Map[V]) ResizeTrailingExtent(newTotalLength int, growValue V) error {
	if newTotalLength < 0 {
		return rowerr.ErrInvalidArgument
	}
	cur := m.Size()
	switch {
	case newTotalLength == cur:
		return nil
	case newTotalLength < cur:
		m.runs = m.prefix(newTotalLength)
		return nil
	default:
		extra := newTotalLength - cur
		value := growValue
		if len(m.runs) > 0 {
			value = m.runs[len(m.runs)-1].Value
		}
		m.runs = splitRun(value, extra, m.runs)
		m.runs = coalesce(m.runs)
		return nil
	}
}

// prefix returns the runs covering [0, n), splitting the run
// straddling n if necessary.
func (m *Map[V]) prefix(n int) []Run[V] {
	if n <= 0 {
		return nil
	}
	out := make([]Run[V], 0, len(m.runs))
	cum := 0
	for _, r := range m.runs {
		if cum >= n {
			break
		}
		remaining := n - cum
		if remaining >= int(r.Length) {
			out = append(out, r)
			cum += int(r.Length)
			continue
		}
		out = append(out, Run[V]{Value: r.Value, Length: uint16(remaining)})
		cum += remaining
		break
	}
	utils.Assert(cum == n, "prefix: map shorter than requested split point")
	return out
}

// suffix returns the runs covering [n, size), splitting the run
// straddling n if necessary.
func (m *Map[V]) suffix(n int) []Run[V] {
	out := make([]Run[V], 0, len(m.runs))
	cum := 0
	for i, r := range m.runs {
		end := cum + int(r.Length)
		switch {
		case end <= n:
			// entirely before n, skip it
		case cum >= n:
			out = append(out, m.runs[i:]...)
			return out
		default:
			// n splits this run
			keep := end - n
			out = append(out, Run[V]{Value: r.Value, Length: uint16(keep)})
			out = append(out, m.runs[i+1:]...)
			return out
		}
		cum = end
	}
	return out
}

// coalesce drops zero-length runs, merges adjacent equal-valued runs,
// and splits any run whose length would overflow the 16-bit run
// length back into multiple same-valued runs.
func coalesce[V comparable](runs []Run[V]) []Run[V] {
	out := make([]Run[V], 0, len(runs))
	for _, r := range runs {
		if r.Length == 0 {
			continue
		}
		out = splitRun(r.Value, int(r.Length), out)
	}
	return out
}

// splitRun appends length positions of value to dst, merging into the
// trailing run when its value matches and splitting across several
// runs when a single run cannot hold the full length.
func splitRun[V comparable](value V, length int, dst []Run[V]) []Run[V] {
	remaining := length
	for remaining > 0 {
		if n := len(dst); n > 0 && dst[n-1].Value == value {
			avail := maxRunLength - int(dst[n-1].Length)
			if avail > 0 {
				add := min(avail, remaining)
				dst[n-1].Length += uint16(add)
				remaining -= add
				continue
			}
		}
		chunk := min(remaining, maxRunLength)
		dst = append(dst, Run[V]{Value: value, Length: uint16(chunk)})
		remaining -= chunk
	}
	return dst
}

// Equal reports whether a and b hold the same canonical sequence of
// runs. Both maps are always kept in canonical form, so this is a
// plain structural comparison.
func Equal[V comparable](a, b *Map[V]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.runs) != len(b.runs) {
		return false
	}
	for i := range a.runs {
		if a.runs[i] != b.runs[i] {
			return false
		}
	}
	return true
}
