package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/atommap/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool           `json:"valid"`
	Config *config.Config `json:"config,omitempty"`
	Line   int            `json:"line,omitempty"`
	Column int            `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.cue>",
		Short: "Validate a config file",
		Long: `Validate a CUE config file against the atommap config schema.

Unknown fields, wrong types, and values outside the allowed set are
reported with their position. On success the effective configuration,
defaults included, is printed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	if _, err := os.Stat(path); err != nil {
		return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("config file not found: %s", path), nil)
	}

	formatter.VerboseLog("Validating %s", path)
	cfg, err := config.Load(path)
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) && cfgErr.Pos.IsValid() {
			return outputValidateError(formatter, ErrCodeConfigInvalid, err.Error(), ValidationResult{
				Line:   cfgErr.Pos.Line(),
				Column: cfgErr.Pos.Column(),
			})
		}
		return outputValidateError(formatter, ErrCodeConfigInvalid, err.Error(), nil)
	}

	return outputValidateSuccess(formatter, cfg)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, cfg config.Config) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Config: &cfg})
	}

	fmt.Fprintln(formatter.Writer, "✓ Config valid")
	if formatter.Verbose {
		fmt.Fprintf(formatter.Writer, "  sentinel: %q\n", cfg.Sentinel)
		fmt.Fprintf(formatter.Writer, "  stop_on_error: %t\n", cfg.StopOnError)
		fmt.Fprintf(formatter.Writer, "  format: %s\n", cfg.Format)
		fmt.Fprintf(formatter.Writer, "  db: %q\n", cfg.Database)
	}
	return nil
}

// outputValidateError outputs a single validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	// Validation errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
