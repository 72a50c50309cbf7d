// Package intern implements a reference-counted interning set: given a
// hashable, comparable value, it returns a small stable ID, collapsing
// duplicate values down to one stored copy.
//
// Adapted from the teacher's terminal/set package (a robin-hood-hashed
// open-addressing table originally used to intern cell styles across a
// page). The hashing/probing strategy is unchanged; only the interned
// value's interface has been generalized from the teacher's
// style-specific "Hashable" to a domain-neutral "Item", since here it
// interns row attribute tokens instead of styles.
package intern

import (
	"fmt"

	"github.com/hnimtadd/vtrow/internal/utils"
)

// Item is anything that can be interned: it must be able to hash
// itself and compare itself against another Item for equality.
type Item interface {
	Hash() uint64
	Equals(other Item) bool
}

// ID identifies an interned item. ID 0 is reserved and never returned
// for a live item.
type ID uint64

type metadata struct {
	bucketID uint64
	psl      uint64
	ref      int64
}

type elem struct {
	data Item
	meta metadata
}

// Set is a reference-counted interning table.
type Set struct {
	items    []*elem
	table    map[uint64]ID
	maxPSL   uint64
	pslStats []int64
	nextID   ID
	living   int
}

// Options configures a new Set.
type Options struct {
	// Cap bounds the number of distinct live items. Defaults to 1000.
	Cap *uint64
}

func New(opts Options) *Set {
	cap := uint64(1000)
	if opts.Cap != nil {
		cap = *opts.Cap
	}
	return &Set{
		items:    make([]*elem, cap),
		table:    make(map[uint64]ID, cap),
		pslStats: make([]int64, 32),
		nextID:   1,
	}
}

// Add interns value, incrementing its reference count, and returns its
// ID.
func (s *Set) Add(value Item) ID {
	items := s.items

checkLoop:
	for s.nextID > 1 {
		prev := items[s.nextID-1]
		switch {
		case prev != nil && prev.meta.ref == 0:
			s.nextID--
			s.deleteItem(s.nextID)
		default:
			break checkLoop
		}
	}

	if id, found := s.lookup(value); found {
		items[id].meta.ref++
		return id
	}

	id := s.insert(uint64(s.nextID), value)
	items[id].meta.ref++
	utils.Assert(items[id].meta.ref == 1,
		fmt.Sprintf("item ref count should be 1 instead of %d", items[id].meta.ref))
	s.living++

	if id == ID(s.nextID) {
		s.nextID++
	}
	return id
}

func (s *Set) insert(newID uint64, value Item) ID {
	_, found := s.lookup(value)
	utils.Assert(!found, "item already exists in the set")

	table := s.table
	items := s.items

	newItem := &elem{data: value, meta: metadata{psl: 0, ref: 0}}

	heldID := newID
	heldItem := newItem
	chosenID := newID

	hash := value.Hash()

	for i := 0; i <= cap(items); i++ {
		p := (hash + uint64(i)) % uint64(len(items))
		id := table[p]

		if id == 0 {
			table[p] = ID(heldID)
			heldItem.meta.bucketID = p
			heldItem.meta.psl = uint64(i)
			s.pslStats[heldItem.meta.psl]++
			s.maxPSL = max(s.maxPSL, heldItem.meta.psl)
			break
		}

		item := items[id]

		if item.meta.ref == 0 {
			s.pslStats[item.meta.psl]--
			*item = elem{}

			if id < ID(newID) {
				chosenID = uint64(id)
			}
			table[p] = ID(heldID)
			heldItem.meta.bucketID = p
			s.pslStats[heldItem.meta.psl]++
			s.maxPSL = max(s.maxPSL, heldItem.meta.psl)
			break
		}

		if item.meta.psl < heldItem.meta.psl ||
			(item.meta.psl == heldItem.meta.psl && item.meta.ref < heldItem.meta.ref) {
			table[p] = ID(heldID)
			s.pslStats[heldItem.meta.psl]++
			s.maxPSL = max(s.maxPSL, heldItem.meta.psl)

			heldID = uint64(id)
			heldItem = item
			s.pslStats[item.meta.psl]--
		}

		heldItem.meta.psl++
	}

	table[newItem.meta.bucketID] = ID(chosenID)
	items[chosenID] = newItem

	return ID(chosenID)
}

func (s *Set) deleteItem(id ID) {
	table := s.table
	items := s.items
	item := items[id]

	utils.Assert(table[item.meta.bucketID] == id, "item not found in table")

	s.pslStats[item.meta.psl]--
	table[item.meta.bucketID] = 0
	items[id] = nil

	prev := item.meta.bucketID
	next := (prev + 1) % uint64(len(items))

	for table[next] != 0 && items[table[next]].meta.psl > 0 {
		items[table[next]].meta.bucketID = prev
		items[table[next]].meta.psl--
		table[prev] = table[next]
		prev = next
		next = (next + 1) % uint64(len(items))
	}

	for s.maxPSL > 0 && s.pslStats[s.maxPSL] == 0 {
		s.maxPSL--
	}

	table[prev] = 0

	if item.meta.ref > 0 {
		s.living--
	}
}

// Release decrements an item's reference count by one.
func (s *Set) Release(id ID) {
	utils.Assert(id > 0, "cannot release item with ID 0")
	item := s.items[id]
	utils.Assert(item.meta.ref > 0)
	item.meta.ref--
	if item.meta.ref == 0 {
		s.living--
	}
}

func (s *Set) lookup(val Item) (ID, bool) {
	table := s.table
	items := s.items

	hash := val.Hash()

	for i := uint64(0); i <= s.maxPSL; i++ {
		p := (hash + i) % uint64(len(items))
		id := table[p]

		if id == 0 {
			return 0, false
		}

		item := items[id]

		if item.meta.psl < i {
			return 0, false
		}

		if item.meta.ref == 0 {
			continue
		}

		if item.meta.psl == i && item.data.Equals(val) {
			return id, true
		}
	}
	return 0, false
}

// Get returns the interned value for id.
func (s *Set) Get(id ID) Item {
	utils.Assert(id > 0, "cannot get item with ID 0")
	return s.items[id].data
}

// Count returns the number of distinct live items.
func (s *Set) Count() int {
	return s.living
}

// Reset discards every interned item and starts the table over from
// empty, reusing its already-allocated backing storage.
//
// The teacher's set backs a page-wide style table that lives for the
// page's whole lifetime and never wants this: styles accumulate across
// the entire scrollback, and an old ID may still be referenced by a
// row far above the viewport. A single AttributeRow has no scrollback
// of its own behind it — once Reset(fill) reinitializes every column
// to one attribute, every ID the row's registry was holding for it
// became unreachable in the same instant, and nothing will ever look
// them up again. Calling Set.Reset along with it turns what would
// otherwise be an interning table that only ever grows, one ID per
// distinct attribute ever seen across the row's entire lifetime, back
// into one sized for the attributes currently on the row.
func (s *Set) Reset() {
	for i := range s.items {
		s.items[i] = nil
	}
	for k := range s.table {
		delete(s.table, k)
	}
	for i := range s.pslStats {
		s.pslStats[i] = 0
	}
	s.maxPSL = 0
	s.nextID = 1
	s.living = 0
}
