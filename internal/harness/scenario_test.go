package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScenarioYAML = `
name: minimal
description: One record renumbered
cases:
  - name: two-atoms
    input: 'x [C:5][O:9] (8)'
    expect:
      output: 'x [C:1][O:2] (1)'
`

func TestLoadScenario_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validScenarioYAML), 0644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "minimal", scenario.Name)
	assert.Empty(t, scenario.RunID)
	assert.Nil(t, scenario.Summary)
	require.Len(t, scenario.Cases, 1)
	assert.Equal(t, "x [C:5][O:9] (8)", scenario.Cases[0].Input)
	assert.Equal(t, "x [C:1][O:2] (1)", scenario.Cases[0].Expect.Output)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_WithSummaryAndRunID(t *testing.T) {
	scenario, err := ParseScenario([]byte(validScenarioYAML + `
run_id: fixed-run
summary:
  status: eof
  processed: 1
  succeeded: 1
  failed: 0
`))
	require.NoError(t, err)

	assert.Equal(t, "fixed-run", scenario.RunID)
	require.NotNil(t, scenario.Summary)
	assert.Equal(t, Summary{Status: "eof", Processed: 1, Succeeded: 1}, *scenario.Summary)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: a\ndescription: b\ncase: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: b\ncases: [{name: c, input: 'x [C:1] (0)', expect: {output: 'x [C:1] (0)'}}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: a\ncases: [{name: c, input: 'x [C:1] (0)', expect: {output: 'x [C:1] (0)'}}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no cases",
			yaml:    "name: a\ndescription: b\ncases: []\n",
			wantErr: "cases list is required",
		},
		{
			name:    "case without name",
			yaml:    "name: a\ndescription: b\ncases: [{input: 'x [C:1] (0)', expect: {output: 'x [C:1] (0)'}}]\n",
			wantErr: "cases[0]: name is required",
		},
		{
			name:    "blank input",
			yaml:    "name: a\ndescription: b\ncases: [{name: c, input: '  ', expect: {error: EMPTY_INPUT}}]\n",
			wantErr: "cases[0]: input is required",
		},
		{
			name:    "multi-line input",
			yaml:    "name: a\ndescription: b\ncases: [{name: c, input: \"x [C:1] (0)\\ny [C:1] (0)\", expect: {error: EMPTY_INPUT}}]\n",
			wantErr: "input must be a single line",
		},
		{
			name:    "missing expect",
			yaml:    "name: a\ndescription: b\ncases: [{name: c, input: 'x [C:1] (0)'}]\n",
			wantErr: "cases[0]: expect is required",
		},
		{
			name:    "empty expect",
			yaml:    "name: a\ndescription: b\ncases: [{name: c, input: 'x [C:1] (0)', expect: {}}]\n",
			wantErr: "one of output or error is required",
		},
		{
			name:    "output and error",
			yaml:    "name: a\ndescription: b\ncases: [{name: c, input: 'x [C:1] (0)', expect: {output: 'x [C:1] (0)', error: EMPTY_INPUT}}]\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "unknown error code",
			yaml:    "name: a\ndescription: b\ncases: [{name: c, input: 'x [C:1] (0)', expect: {error: BROKEN}}]\n",
			wantErr: `unknown error code "BROKEN"`,
		},
		{
			name:    "duplicate case name",
			yaml:    "name: a\ndescription: b\ncases: [{name: c, input: 'x [C:1] (0)', expect: {error: EMPTY_INPUT}}, {name: c, input: 'y [C:1] (0)', expect: {error: EMPTY_INPUT}}]\n",
			wantErr: `cases[1]: duplicate case name "c"`,
		},
		{
			name:    "unknown summary status",
			yaml:    validScenarioYAML + "summary: {status: sentinel, processed: 1, succeeded: 1, failed: 0}\n",
			wantErr: `summary: unknown status "sentinel"`,
		},
		{
			name:    "negative summary count",
			yaml:    validScenarioYAML + "summary: {status: eof, processed: -1, succeeded: 0, failed: 0}\n",
			wantErr: "counts must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_Testdata(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			_, err := LoadScenario(file)
			assert.NoError(t, err)
		})
	}
}
