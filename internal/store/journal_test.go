package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/roach88/atommap/internal/ir"
)

func TestBeginAndReadRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.BeginRun(ctx, createTestRun("run-1")); err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	run, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if !reflect.DeepEqual(run, createTestRun("run-1")) {
		t.Errorf("ReadRun() = %+v, expected %+v", run, createTestRun("run-1"))
	}
}

func TestBeginRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := createTestRun("run-1")
	second := createTestRun("run-1")
	second.Source = "other.txt"

	if err := s.BeginRun(ctx, first); err != nil {
		t.Fatalf("first BeginRun() failed: %v", err)
	}
	if err := s.BeginRun(ctx, second); err != nil {
		t.Fatalf("second BeginRun() failed: %v", err)
	}

	run, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if run.Source != "stdin" {
		t.Errorf("Source = %q, expected original row to be kept", run.Source)
	}
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestFinishRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-1")
	if err := s.BeginRun(ctx, run); err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	run.Status = ir.RunStatusSentinel
	run.Processed = 3
	run.Succeeded = 2
	run.Failed = 1
	if err := s.FinishRun(ctx, run); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	got, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if !reflect.DeepEqual(got, run) {
		t.Errorf("ReadRun() = %+v, expected %+v", got, run)
	}
}

func TestFinishRun_UnknownRun(t *testing.T) {
	s := createTestStore(t)

	err := s.FinishRun(context.Background(), createTestRun("missing"))
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestListRuns_InsertionOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if runs == nil || len(runs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", runs)
	}

	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := s.BeginRun(ctx, createTestRun(id)); err != nil {
			t.Fatalf("BeginRun(%s) failed: %v", id, err)
		}
	}

	runs, err = s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	if !reflect.DeepEqual(ids, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("ListRuns() order = %v", ids)
	}
}

func TestWriteAndReadOutcomes(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.BeginRun(ctx, createTestRun("run-1")); err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	ok := createSuccessOutcome("run-1", 1)
	bad := createFailedOutcome("run-1", 2)
	// Written out of order; reads come back by seq.
	for _, o := range []ir.Outcome{bad, ok} {
		if err := s.WriteOutcome(ctx, o); err != nil {
			t.Fatalf("WriteOutcome(%d) failed: %v", o.Seq, err)
		}
	}

	outcomes, err := s.ReadOutcomes(ctx, "run-1", false)
	if err != nil {
		t.Fatalf("ReadOutcomes() failed: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if !reflect.DeepEqual(outcomes[0], ok) {
		t.Errorf("outcome 1 = %+v, expected %+v", outcomes[0], ok)
	}
	if !reflect.DeepEqual(outcomes[1], bad) {
		t.Errorf("outcome 2 = %+v, expected %+v", outcomes[1], bad)
	}

	failed, err := s.ReadOutcomes(ctx, "run-1", true)
	if err != nil {
		t.Fatalf("ReadOutcomes(failedOnly) failed: %v", err)
	}
	if len(failed) != 1 || failed[0].Seq != 2 {
		t.Errorf("expected only seq 2, got %+v", failed)
	}
}

func TestWriteOutcome_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.BeginRun(ctx, createTestRun("run-1")); err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	o := createSuccessOutcome("run-1", 1)
	for i := 0; i < 3; i++ {
		if err := s.WriteOutcome(ctx, o); err != nil {
			t.Fatalf("WriteOutcome() iteration %d failed: %v", i, err)
		}
	}

	outcomes, err := s.ReadOutcomes(ctx, "run-1", false)
	if err != nil {
		t.Fatalf("ReadOutcomes() failed: %v", err)
	}
	if len(outcomes) != 1 {
		t.Errorf("expected 1 outcome after duplicate writes, got %d", len(outcomes))
	}
}

func TestWriteOutcome_RequiresRun(t *testing.T) {
	s := createTestStore(t)

	err := s.WriteOutcome(context.Background(), createSuccessOutcome("missing", 1))
	if err == nil {
		t.Error("expected foreign key error for unknown run, got nil")
	}
}

func TestFindOutcomesByRecord(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"run-b", "run-a"} {
		if err := s.BeginRun(ctx, createTestRun(id)); err != nil {
			t.Fatalf("BeginRun(%s) failed: %v", id, err)
		}
		if err := s.WriteOutcome(ctx, createSuccessOutcome(id, 1)); err != nil {
			t.Fatalf("WriteOutcome(%s) failed: %v", id, err)
		}
		if err := s.WriteOutcome(ctx, createFailedOutcome(id, 2)); err != nil {
			t.Fatalf("WriteOutcome(%s) failed: %v", id, err)
		}
	}

	recordID := createSuccessOutcome("", 0).RecordID
	found, err := s.FindOutcomesByRecord(ctx, recordID)
	if err != nil {
		t.Fatalf("FindOutcomesByRecord() failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(found))
	}
	if found[0].RunID != "run-b" || found[1].RunID != "run-a" {
		t.Errorf("expected run insertion order, got %s then %s", found[0].RunID, found[1].RunID)
	}

	none, err := s.FindOutcomesByRecord(ctx, "no-such-record")
	if err != nil {
		t.Fatalf("FindOutcomesByRecord() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no outcomes, got %d", len(none))
	}
}

func TestIndicesRoundTrip(t *testing.T) {
	text, err := marshalIndices(nil)
	if err != nil {
		t.Fatalf("marshalIndices(nil) failed: %v", err)
	}
	if text != "[]" {
		t.Errorf("marshalIndices(nil) = %q, expected []", text)
	}

	text, err = marshalIndices([]int{13, 0, 4})
	if err != nil {
		t.Fatalf("marshalIndices() failed: %v", err)
	}
	if text != "[13,0,4]" {
		t.Errorf("marshalIndices() = %q", text)
	}

	got, err := unmarshalIndices(text)
	if err != nil {
		t.Fatalf("unmarshalIndices() failed: %v", err)
	}
	if !reflect.DeepEqual(got, []int{13, 0, 4}) {
		t.Errorf("unmarshalIndices() = %v", got)
	}

	if _, err := unmarshalIndices("not json"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
