package ir

import "errors"

// RunStatus records why a run stopped reading input.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusSentinel RunStatus = "sentinel"
	RunStatusEOF      RunStatus = "eof"
	RunStatusStopped  RunStatus = "stopped_on_error"
	RunStatusCanceled RunStatus = "canceled"
	RunStatusAborted  RunStatus = "aborted"
)

// Run summarizes one pass of the driver over an input stream.
type Run struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Sentinel  string    `json:"sentinel,omitempty"`
	Status    RunStatus `json:"status"`
	Processed int       `json:"processed"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

// Outcome is the result of processing one input line.
//
// Exactly one of Output or ErrorCode is meaningful: a successful outcome
// has an empty ErrorCode. Input is the zero Record when the line could not
// be parsed.
type Outcome struct {
	RunID        string `json:"run_id"`
	Seq          int64  `json:"seq"`
	Line         string `json:"line"`
	RecordID     string `json:"record_id,omitempty"`
	Input        Record `json:"input"`
	Output       Record `json:"output"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	// Err is the original error, kept for errors.As inspection.
	// Not persisted.
	Err error `json:"-"`
}

// Failed reports whether the line produced an error.
func (o Outcome) Failed() bool {
	return o.ErrorCode != ""
}

// ErrorDetails returns structured fields of an engine error, or nil.
func (o Outcome) ErrorDetails() map[string]any {
	var e *Error
	if !errors.As(o.Err, &e) {
		return nil
	}
	details := map[string]any{}
	if e.Offset >= 0 {
		details["offset"] = e.Offset
	}
	if e.Tag != 0 {
		details["tag"] = e.Tag
	}
	if e.Position >= 0 {
		details["position"] = e.Position
	}
	return details
}
