package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/atommap/internal/ir"
	"github.com/roach88/atommap/internal/record"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunID is an optional fixed run ID.
	// If empty, defaults to "test-run-default" for deterministic golden files.
	RunID string `yaml:"run_id,omitempty"`

	// Cases are fed to the driver in order, one line each.
	Cases []Case `yaml:"cases"`

	// Summary optionally checks the run's final status and counters.
	Summary *Summary `yaml:"summary,omitempty"`
}

// Case is one input line and its expected outcome.
type Case struct {
	Name   string  `yaml:"name"`
	Input  string  `yaml:"input"`
	Expect *Expect `yaml:"expect"`
}

// Expect names either the formatted output record or the error code.
// Exactly one must be set.
type Expect struct {
	Output string `yaml:"output,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// Summary is the expected run summary.
type Summary struct {
	Status    string `yaml:"status"`
	Processed int    `yaml:"processed"`
	Succeeded int    `yaml:"succeeded"`
	Failed    int    `yaml:"failed"`
}

// knownErrorCodes lists the codes a case may expect.
var knownErrorCodes = []string{
	string(ir.ErrCodeMalformedInput),
	string(ir.ErrCodeEmptyInput),
	string(ir.ErrCodeDuplicateTag),
	string(ir.ErrCodeOutOfRange),
	record.ErrCodeMalformedRecord,
}

// knownStatuses lists the run statuses a scenario can end in. The driver
// disables the sentinel for scenarios, so runs end at EOF.
var knownStatuses = []string{
	string(ir.RunStatusEOF),
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if err := validateCase(i, &c); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true
	}

	if s.Summary != nil {
		if !slices.Contains(knownStatuses, s.Summary.Status) {
			return fmt.Errorf("summary: unknown status %q", s.Summary.Status)
		}
		if s.Summary.Processed < 0 || s.Summary.Succeeded < 0 || s.Summary.Failed < 0 {
			return fmt.Errorf("summary: counts must be non-negative")
		}
	}

	return nil
}

// validateCase validates a single case.
func validateCase(index int, c *Case) error {
	if c.Name == "" {
		return fmt.Errorf("cases[%d]: name is required", index)
	}

	// Blank lines are skipped by the driver and would shift every later case.
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("cases[%d]: input is required", index)
	}
	if strings.ContainsAny(c.Input, "\r\n") {
		return fmt.Errorf("cases[%d]: input must be a single line", index)
	}

	if c.Expect == nil {
		return fmt.Errorf("cases[%d]: expect is required", index)
	}
	switch {
	case c.Expect.Output == "" && c.Expect.Error == "":
		return fmt.Errorf("cases[%d].expect: one of output or error is required", index)
	case c.Expect.Output != "" && c.Expect.Error != "":
		return fmt.Errorf("cases[%d].expect: output and error are mutually exclusive", index)
	case c.Expect.Error != "" && !slices.Contains(knownErrorCodes, c.Expect.Error):
		return fmt.Errorf("cases[%d].expect: unknown error code %q", index, c.Expect.Error)
	}

	return nil
}
