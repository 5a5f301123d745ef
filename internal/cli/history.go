package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/atommap/internal/ir"
	"github.com/roach88/atommap/internal/record"
	"github.com/roach88/atommap/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - show one run's outcomes
	Failed   bool   // with RunID, only failed outcomes
	RecordID string // optional - every outcome of one record
}

// OutcomeView is the JSON form of a journaled outcome.
type OutcomeView struct {
	RunID        string `json:"run_id"`
	Seq          int64  `json:"seq"`
	RecordID     string `json:"record_id,omitempty"`
	Line         string `json:"line"`
	Output       string `json:"output,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// RunHistory is the JSON payload of history --run.
type RunHistory struct {
	Run      ir.Run        `json:"run"`
	Outcomes []OutcomeView `json:"outcomes"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query the run journal",
		Long: `Query runs journaled by "atommap renumber --db".

Without --run or --record, lists every run with its status and counts.
With --run, shows the outcome of each record in that run.
With --record, shows every journaled outcome for a record ID.

Examples:
  atommap history --db ./atommap.db
  atommap history --db ./atommap.db --run 0190c1a2-... --failed
  atommap history --db ./atommap.db --record 5f2c... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show outcomes of this run")
	cmd.Flags().BoolVar(&opts.Failed, "failed", false, "with --run, show failed records only")
	cmd.Flags().StringVar(&opts.RecordID, "record", "", "show every outcome of this record ID")
	cmd.MarkFlagsMutuallyExclusive("run", "record")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	// Opening would create an empty journal; a missing file is a usage error.
	if _, err := os.Stat(opts.Database); err != nil {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("%s: database not found", ErrCodeNotFound), err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	switch {
	case opts.RunID != "":
		run, err := st.ReadRun(ctx, opts.RunID)
		if errors.Is(err, store.ErrRunNotFound) {
			_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run not found: %s", opts.RunID), nil)
			return WrapExitError(ExitCommandError, ErrCodeNotFound, err)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		outcomes, err := st.ReadOutcomes(ctx, opts.RunID, opts.Failed)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read outcomes", err)
		}
		if opts.Format == "json" {
			return formatter.Success(RunHistory{Run: run, Outcomes: outcomeViews(outcomes)})
		}
		w := cmd.OutOrStdout()
		writeRun(w, run)
		writeOutcomes(w, outcomes, false)
		return nil

	case opts.RecordID != "":
		outcomes, err := st.FindOutcomesByRecord(ctx, opts.RecordID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read outcomes", err)
		}
		if opts.Format == "json" {
			return formatter.Success(outcomeViews(outcomes))
		}
		if len(outcomes) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No outcomes found for record: %s\n", opts.RecordID)
			return nil
		}
		writeOutcomes(cmd.OutOrStdout(), outcomes, true)
		return nil
	}

	runs, err := st.ListRuns(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}
	if opts.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs found.")
		return nil
	}
	for _, run := range runs {
		writeRun(cmd.OutOrStdout(), run)
	}
	return nil
}

func writeRun(w io.Writer, run ir.Run) {
	fmt.Fprintf(w, "%s  %-16s processed=%d succeeded=%d failed=%d  %s\n",
		run.ID, run.Status, run.Processed, run.Succeeded, run.Failed, run.Source)
}

// writeOutcomes prints one line per outcome. withRun prefixes each line
// with its run ID, for listings that span runs.
func writeOutcomes(w io.Writer, outcomes []ir.Outcome, withRun bool) {
	for _, o := range outcomes {
		prefix := fmt.Sprintf("  #%d", o.Seq)
		if withRun {
			prefix = fmt.Sprintf("%s #%d", o.RunID, o.Seq)
		}
		if o.Failed() {
			fmt.Fprintf(w, "%s Error [%s]: %s\n", prefix, MapOutcomeToErrorCode(o.ErrorCode), o.ErrorMessage)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", prefix, record.Format(o.Output))
	}
}

func outcomeViews(outcomes []ir.Outcome) []OutcomeView {
	views := make([]OutcomeView, len(outcomes))
	for i, o := range outcomes {
		views[i] = OutcomeView{
			RunID:        o.RunID,
			Seq:          o.Seq,
			RecordID:     o.RecordID,
			Line:         o.Line,
			ErrorCode:    o.ErrorCode,
			ErrorMessage: o.ErrorMessage,
		}
		if !o.Failed() {
			views[i].Output = record.Format(o.Output)
		}
	}
	return views
}
