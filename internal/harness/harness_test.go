package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "One record renumbered",
		Cases: []Case{
			{Name: "two-atoms", Input: "x [C:5][O:9] (8)", Expect: &Expect{Output: "x [C:1][O:2] (1)"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "test-run-default", result.Run.ID)
	require.Len(t, result.Cases, 1)
	assert.True(t, result.Cases[0].Pass)
	assert.Equal(t, "x [C:1][O:2] (1)", result.Cases[0].Output)
}

func TestRun_UsesScenarioRunID(t *testing.T) {
	scenario := &Scenario{
		Name:        "run-id",
		Description: "Fixed run ID",
		RunID:       "run-42",
		Cases: []Case{
			{Name: "a", Input: "x [C:1] (0)", Expect: &Expect{Output: "x [C:1] (0)"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.Equal(t, "run-42", result.Run.ID)
	assert.Equal(t, "scenario:run-id", result.Run.Source)
}

func TestRun_ExpectedErrors(t *testing.T) {
	scenario := &Scenario{
		Name:        "errors",
		Description: "Expected failures pass",
		Cases: []Case{
			{Name: "range", Input: "x [C:3][N:4] (2, 99)", Expect: &Expect{Error: "OUT_OF_RANGE"}},
			{Name: "framing", Input: "garbage", Expect: &Expect{Error: "MALFORMED_RECORD"}},
			{Name: "ok", Input: "y [C:10][O:20] (19, 9)", Expect: &Expect{Output: "y [C:1][O:2] (1, 0)"}},
		},
		Summary: &Summary{Status: "eof", Processed: 3, Succeeded: 1, Failed: 2},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Cases, 3)
	assert.Equal(t, "OUT_OF_RANGE", result.Cases[0].ErrorCode)
	assert.Contains(t, result.Cases[0].ErrorMessage, "tag 100")
	assert.Equal(t, "MALFORMED_RECORD", result.Cases[1].ErrorCode)
	assert.Empty(t, result.Cases[1].Output)
}

func TestRun_ReportsMismatches(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "Every kind of mismatch is reported",
		Cases: []Case{
			{Name: "wrong-output", Input: "a [C:3] (2)", Expect: &Expect{Output: "a [C:3] (2)"}},
			{Name: "unexpected-error", Input: "b CCO (0)", Expect: &Expect{Output: "b CCO (0)"}},
			{Name: "unexpected-success", Input: "c [C:1] (0)", Expect: &Expect{Error: "EMPTY_INPUT"}},
			{Name: "wrong-code", Input: "d [C:1][C:1] (0)", Expect: &Expect{Error: "EMPTY_INPUT"}},
		},
		Summary: &Summary{Status: "eof", Processed: 4, Succeeded: 4, Failed: 0},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	for _, c := range result.Cases {
		assert.False(t, c.Pass, c.Name)
	}
	assert.Equal(t, []string{
		`case "wrong-output": expected output "a [C:3] (2)", actual output "a [C:1] (0)"`,
		`case "unexpected-error": expected output "b CCO (0)", actual EMPTY_INPUT: notation contains no atom map tags`,
		`case "unexpected-success": expected error EMPTY_INPUT, actual output "c [C:1] (0)"`,
		`case "wrong-code": expected error EMPTY_INPUT, actual DUPLICATE_TAG: tag 1 appears more than once`,
		`summary succeeded: expected 4, actual 2`,
		`summary failed: expected 0, actual 2`,
	}, result.Errors)
}

func TestRun_SentinelWordIsAnOrdinaryRecord(t *testing.T) {
	scenario := &Scenario{
		Name:        "quit",
		Description: "Scenarios run without a sentinel",
		Cases: []Case{
			{Name: "quit", Input: "quit", Expect: &Expect{Error: "MALFORMED_RECORD"}},
			{Name: "after", Input: "x [C:2] (1)", Expect: &Expect{Output: "x [C:1] (0)"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 2, result.Run.Processed)
}

func TestRunContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scenario := &Scenario{
		Name:        "canceled",
		Description: "Canceled before the first line",
		Cases: []Case{
			{Name: "a", Input: "x [C:1] (0)", Expect: &Expect{Output: "x [C:1] (0)"}},
		},
	}

	_, err := RunContext(ctx, scenario)
	require.ErrorIs(t, err, context.Canceled)
}
