package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every scenario in testdata/scenarios and compares the
// run against its golden snapshot. To regenerate:
//
//	go test ./internal/harness -run TestScenarios -update
func TestScenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)

			require.NoError(t, AssertGolden(t, scenario.Name, result))
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/worked-example.yaml")
	require.NoError(t, err)

	require.NoError(t, RunWithGolden(t, scenario))
}

func TestSnapshot_Marshal(t *testing.T) {
	result := NewResult()
	result.Run.ID = "r"
	result.Run.Status = "eof"
	result.Run.Processed = 2
	result.Run.Succeeded = 1
	result.Run.Failed = 1
	result.Cases = []CaseResult{
		{Name: "ok", Input: "x [C:2] (1)", Output: "x [C:1] (0)", Pass: true},
		{Name: "bad", Input: "y", ErrorCode: "MALFORMED_RECORD", ErrorMessage: "MALFORMED_RECORD: m"},
	}

	snapshot := NewSnapshot("s", result)
	data, err := snapshot.Marshal()
	require.NoError(t, err)

	assert.Equal(t,
		`{"cases":[{"input":"x [C:2] (1)","name":"ok","output":"x [C:1] (0)"},`+
			`{"error_code":"MALFORMED_RECORD","error_message":"MALFORMED_RECORD: m","input":"y","name":"bad"}],`+
			`"run_id":"r","scenario_name":"s","summary":{"failed":1,"processed":2,"status":"eof","succeeded":1}}`,
		string(data))
}
