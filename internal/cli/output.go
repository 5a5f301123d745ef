package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/atommap/internal/ir"
	"github.com/roach88/atommap/internal/record"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // One or more records or scenarios failed
	ExitCommandError = 2 // Command error (invalid paths, bad config, journal failure, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostics and failed records in text mode (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`           // "ok" or "error"
	Data   any       `json:"data,omitempty"`   // success payload
	Error  *CLIError `json:"error,omitempty"`  // error details
	RunID  string    `json:"run_id,omitempty"` // driver run, for renumber output
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E204", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// RecordData is the JSON payload of a renumbered record.
type RecordData struct {
	Seq        int64  `json:"seq"`
	Identifier string `json:"identifier"`
	Notation   string `json:"notation"`
	Indices    []int  `json:"indices"`
	RecordID   string `json:"record_id"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Outcome writes one driver outcome. It satisfies driver.SinkFunc.
//
// Text mode prints renumbered records to Writer and failures to ErrWriter,
// so stdout carries only valid records. JSON mode writes one CLIResponse
// per record to Writer.
func (f *OutputFormatter) Outcome(o ir.Outcome) error {
	if o.Failed() {
		return f.failedOutcome(o)
	}

	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data: RecordData{
				Seq:        o.Seq,
				Identifier: o.Output.Identifier,
				Notation:   o.Output.Notation,
				Indices:    o.Output.Indices,
				RecordID:   o.RecordID,
			},
			RunID: o.RunID,
		})
	}

	_, err := fmt.Fprintln(f.Writer, record.Format(o.Output))
	return err
}

func (f *OutputFormatter) failedOutcome(o ir.Outcome) error {
	code := MapOutcomeToErrorCode(o.ErrorCode)

	if f.Format == "json" {
		details := map[string]any{
			"seq":        o.Seq,
			"line":       o.Line,
			"error_code": o.ErrorCode,
		}
		if o.Input.Identifier != "" {
			details["identifier"] = o.Input.Identifier
		}
		for k, v := range o.ErrorDetails() {
			details[k] = v
		}
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: o.ErrorMessage,
				Details: details,
			},
			RunID: o.RunID,
		})
	}

	_, err := fmt.Fprintf(f.GetErrWriter(), "Error [%s]: %s: %s\n", code, outcomeLabel(o), o.ErrorMessage)
	return err
}

// outcomeLabel names a record in text diagnostics. Lines that failed
// framing have no identifier, so they are named by sequence number.
func outcomeLabel(o ir.Outcome) string {
	if o.Input.Identifier != "" {
		return o.Input.Identifier
	}
	return fmt.Sprintf("record %d", o.Seq)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
