package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/atommap/internal/ir"
)

// GoldenDir is where golden snapshots live, relative to the test's package.
const GoldenDir = "testdata/golden"

// Snapshot captures what a scenario run produced.
// It serializes to canonical JSON for deterministic comparison.
type Snapshot struct {
	ScenarioName string       `json:"scenario_name"`
	RunID        string       `json:"run_id"`
	Run          ir.Run       `json:"summary"`
	Cases        []CaseResult `json:"cases"`
}

// NewSnapshot builds the snapshot of a scenario result.
func NewSnapshot(scenarioName string, result *Result) Snapshot {
	return Snapshot{
		ScenarioName: scenarioName,
		RunID:        result.Run.ID,
		Run:          result.Run,
		Cases:        result.Cases,
	}
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical JSON serialization.
// Pass flags are left out: a snapshot records what happened, not whether the
// scenario expected it.
func (s *Snapshot) toCanonicalMap() map[string]any {
	cases := make([]any, len(s.Cases))
	for i, c := range s.Cases {
		m := map[string]any{
			"name":  c.Name,
			"input": c.Input,
		}
		if c.Failed() {
			m["error_code"] = c.ErrorCode
			m["error_message"] = c.ErrorMessage
		} else {
			m["output"] = c.Output
		}
		cases[i] = m
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"run_id":        s.RunID,
		"summary": map[string]any{
			"status":    string(s.Run.Status),
			"processed": s.Run.Processed,
			"succeeded": s.Run.Succeeded,
			"failed":    s.Run.Failed,
		},
		"cases": cases,
	}
}

// Marshal returns the canonical JSON of the snapshot.
func (s *Snapshot) Marshal() ([]byte, error) {
	return ir.MarshalCanonical(s.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := NewSnapshot(scenarioName, result)
	data, err := snapshot.Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
