package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/atommap/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a running run with the given ID.
func createTestRun(id string) ir.Run {
	return ir.Run{
		ID:       id,
		Source:   "stdin",
		Sentinel: "quit",
		Status:   ir.RunStatusRunning,
	}
}

// createSuccessOutcome creates a successful outcome for a two-atom record.
func createSuccessOutcome(runID string, seq int64) ir.Outcome {
	in := ir.Record{Identifier: "mol", Notation: "[C:3][N:7]", Indices: []int{2, 6}}
	return ir.Outcome{
		RunID:    runID,
		Seq:      seq,
		Line:     "mol [C:3][N:7] (2, 6)",
		RecordID: ir.MustRecordID(in),
		Input:    in,
		Output:   ir.Record{Identifier: "mol", Notation: "[C:1][N:2]", Indices: []int{0, 1}},
	}
}

// createFailedOutcome creates an outcome for a line that never parsed.
func createFailedOutcome(runID string, seq int64) ir.Outcome {
	return ir.Outcome{
		RunID:        runID,
		Seq:          seq,
		Line:         "garbage",
		ErrorCode:    "MALFORMED_RECORD",
		ErrorMessage: "MALFORMED_RECORD: expected notation and index tuple after identifier",
	}
}
