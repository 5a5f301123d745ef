package renumber

import (
	"math"

	"github.com/roach88/atommap/internal/ir"
)

// IndexOffset is the distance between tag numbering (1-based, in the
// notation) and index numbering (0-based, in the tuple).
const IndexOffset = 1

// TranslateIndices maps each index through m: v -> m[v+1] - 1.
//
// The result has the same length and order as indices. An index whose tag
// is not in m (including negative values) returns OUT_OF_RANGE; the tuple
// then references an atom the notation no longer contains.
func TranslateIndices(indices []int, m *Map) ([]int, error) {
	out := make([]int, len(indices))
	for i, v := range indices {
		// No tag exists for negative indices or for math.MaxInt, whose
		// tag would overflow.
		if v < 0 || v > math.MaxInt-IndexOffset {
			return nil, ir.NewOutOfRangeError(i, v)
		}
		newTag, ok := m.Lookup(v + IndexOffset)
		if !ok {
			return nil, ir.NewOutOfRangeError(i, v)
		}
		out[i] = newTag - IndexOffset
	}
	return out, nil
}
