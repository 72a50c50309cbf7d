package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testItem struct{ n int }

func (t testItem) Hash() uint64       { return uint64(t.n) }
func (t testItem) Equals(o Item) bool { return o.(testItem).n == t.n }

func TestAddDedups(t *testing.T) {
	s := New(Options{})
	id1 := s.Add(testItem{1})
	id2 := s.Add(testItem{1})
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, s.Count())
}

func TestAddDistinctValues(t *testing.T) {
	s := New(Options{})
	id1 := s.Add(testItem{1})
	id2 := s.Add(testItem{2})
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, s.Count())
}

func TestReleaseFreesSlot(t *testing.T) {
	s := New(Options{})
	id := s.Add(testItem{1})
	s.Release(id)
	assert.Equal(t, 0, s.Count())

	id2 := s.Add(testItem{2})
	assert.Equal(t, 1, s.Count())
	assert.NotEqual(t, ID(0), id2)
}

func TestGetReturnsStoredValue(t *testing.T) {
	s := New(Options{})
	id := s.Add(testItem{42})
	assert.Equal(t, testItem{42}, s.Get(id))
}

func TestResetClearsCount(t *testing.T) {
	s := New(Options{})
	s.Add(testItem{1})
	s.Add(testItem{2})
	require := assert.New(t)
	require.Equal(2, s.Count())

	s.Reset()
	require.Equal(0, s.Count())
}

func TestResetAllowsReuseAndReinterning(t *testing.T) {
	s := New(Options{})
	first := s.Add(testItem{1})

	s.Reset()

	second := s.Add(testItem{1})
	assert.Equal(t, first, second)
	assert.Equal(t, testItem{1}, s.Get(second))
	assert.Equal(t, 1, s.Count())
}

func TestManyDistinctValues(t *testing.T) {
	s := New(Options{})
	ids := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := s.Add(testItem{i})
		ids[id] = true
	}
	assert.Len(t, ids, 100)
	assert.Equal(t, 100, s.Count())
}
