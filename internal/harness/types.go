package harness

import "github.com/roach88/atommap/internal/ir"

// CaseResult is the journaled outcome of one case.
type CaseResult struct {
	Name         string `json:"name"`
	Input        string `json:"input"`
	Output       string `json:"output,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Pass         bool   `json:"pass"`
}

// Failed reports whether the record was rejected.
func (c CaseResult) Failed() bool {
	return c.ErrorCode != ""
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every case and the summary matched.
	Pass bool `json:"pass"`

	// Run is the run summary as journaled.
	Run ir.Run `json:"run"`

	// Cases holds one entry per scenario case, in order.
	Cases []CaseResult `json:"cases"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
