package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/atommap/internal/driver"
	"github.com/roach88/atommap/internal/store"
)

var _ driver.Journal = (*store.Store)(nil)

// RenumberOptions holds flags for the renumber command.
type RenumberOptions struct {
	*RootOptions
	Database    string
	Sentinel    string
	StopOnError bool

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs driver.RunIDGenerator
}

// NewRenumberCommand creates the renumber command.
func NewRenumberCommand(rootOpts *RootOptions) *cobra.Command {
	return newRenumberCommand(&RenumberOptions{RootOptions: rootOpts})
}

func newRenumberCommand(opts *RenumberOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renumber [input-file]",
		Short: "Renumber atom maps in record lines",
		Long: `Read records of the form

  <identifier> <mapped-smiles> (<i0>, <i1>, ..., <iN>)

from a file or stdin and print each one with its atom map tags compacted
to 1..K in their original order and its indices rewritten to match.

Reading stops at the sentinel line (default "quit") or end of input.
Blank lines are skipped. A record that fails is reported on stderr and
processing continues with the next line unless --stop-on-error is set.

Exit codes:
  0 - All records renumbered
  1 - One or more records failed
  2 - Command error (unreadable input, database error, etc.)

Examples:
  atommap renumber records.txt
  atommap renumber --db ./atommap.db < records.txt
  atommap renumber --sentinel "" --format json records.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenumber(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "journal runs to this SQLite database")
	cmd.Flags().StringVar(&opts.Sentinel, "sentinel", driver.DefaultSentinel, `line that ends input ("" reads to EOF)`)
	cmd.Flags().BoolVar(&opts.StopOnError, "stop-on-error", false, "stop at the first failed record")

	return cmd
}

// applyConfig fills flags the user did not set from the config file.
func (o *RenumberOptions) applyConfig(cmd *cobra.Command) {
	if o.Config == nil {
		return
	}
	if !cmd.Flags().Changed("db") {
		o.Database = o.Config.Database
	}
	if !cmd.Flags().Changed("sentinel") {
		o.Sentinel = o.Config.Sentinel
	}
	if !cmd.Flags().Changed("stop-on-error") {
		o.StopOnError = o.Config.StopOnError
	}
}

func runRenumber(opts *RenumberOptions, args []string, cmd *cobra.Command) error {
	opts.applyConfig(cmd)

	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	var (
		input  io.Reader = cmd.InOrStdin()
		source           = "stdin"
	)
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s: cannot open input", ErrCodeNotFound), err)
		}
		defer f.Close()
		input = f
		source = args[0]
	}

	d := driver.Options{
		Sentinel:    opts.Sentinel,
		StopOnError: opts.StopOnError,
		Source:      source,
		RunIDs:      opts.RunIDs,
		Logger:      logger,
	}

	if opts.Database != "" {
		logger.Debug("opening database", "path", opts.Database)
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		d.Journal = st
	}

	ctx, stop := withSignalCancel(commandContext(cmd), logger)
	defer stop()

	formatter := newFormatter(opts.RootOptions, cmd)
	run, err := driver.New(d).Run(ctx, input, driver.SinkFunc(formatter.Outcome))
	if err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitCommandError, "renumber failed", err)
	}

	formatter.VerboseLog("run %s %s: %d processed, %d succeeded, %d failed",
		run.ID, run.Status, run.Processed, run.Succeeded, run.Failed)

	if run.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d records failed", run.Failed, run.Processed))
	}
	return nil
}

// withSignalCancel returns a context canceled on SIGINT or SIGTERM.
// The driver finishes the current record and journals the run as canceled.
// Only the first signal is caught; a second one terminates the process.
func withSignalCancel(parent context.Context, logger *slog.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			signal.Stop(sigChan)
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan) // Prevent signal handler leak
		cancel()
	}
}
