package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/atommap/internal/ir"
)

// marshalIndices converts an index tuple to canonical JSON TEXT for storage.
// A nil tuple is stored as "[]".
func marshalIndices(indices []int) (string, error) {
	if indices == nil {
		indices = []int{}
	}
	data, err := ir.MarshalCanonical(indices)
	if err != nil {
		return "", fmt.Errorf("marshal indices: %w", err)
	}
	return string(data), nil
}

// unmarshalIndices parses stored JSON TEXT back into an index tuple.
// "[]" becomes nil so that failed outcomes round-trip to a zero Record.
func unmarshalIndices(text string) ([]int, error) {
	var indices []int
	if err := json.Unmarshal([]byte(text), &indices); err != nil {
		return nil, fmt.Errorf("unmarshal indices: %w", err)
	}
	if len(indices) == 0 {
		return nil, nil
	}
	return indices, nil
}
