package renumber

import (
	"slices"

	"github.com/roach88/atommap/internal/ir"
)

// Map is a dense, order-preserving bijection from old tags onto 1..K.
// Maps are immutable once built.
type Map struct {
	forward map[int]int
	olds    []int // ascending; olds[i] maps to i+1
}

// BuildMap ranks the distinct tags ascending and assigns new = rank.
//
// tags is in order of first appearance. Returns EMPTY_INPUT if tags is
// empty and DUPLICATE_TAG if any value repeats.
func BuildMap(tags []int) (*Map, error) {
	if len(tags) == 0 {
		return nil, ir.NewEmptyError()
	}

	forward := make(map[int]int, len(tags))
	for _, tag := range tags {
		if _, seen := forward[tag]; seen {
			return nil, ir.NewDuplicateTagError(tag)
		}
		forward[tag] = 0
	}

	olds := slices.Clone(tags)
	slices.Sort(olds)
	for i, old := range olds {
		forward[old] = i + 1
	}

	return &Map{forward: forward, olds: olds}, nil
}

// Lookup returns the new tag for old.
func (m *Map) Lookup(old int) (int, bool) {
	n, ok := m.forward[old]
	return n, ok
}

// Len returns K, the number of distinct tags.
func (m *Map) Len() int {
	return len(m.olds)
}

// OldTags returns the old tags in ascending order.
// OldTags()[i] maps to i+1.
func (m *Map) OldTags() []int {
	return slices.Clone(m.olds)
}
