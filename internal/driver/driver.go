package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/atommap/internal/ir"
)

// DefaultSentinel ends a run when it appears alone on a line.
const DefaultSentinel = "quit"

// maxLineBytes bounds a single input line. Mapped notations for large
// molecules run to a few kilobytes; this leaves ample headroom.
const maxLineBytes = 1 << 20

// Sink receives every outcome in input order.
type Sink interface {
	Emit(ir.Outcome) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ir.Outcome) error

// Emit calls f(o).
func (f SinkFunc) Emit(o ir.Outcome) error {
	return f(o)
}

// Journal persists runs and their outcomes.
// *store.Store implements Journal.
type Journal interface {
	BeginRun(ctx context.Context, run ir.Run) error
	WriteOutcome(ctx context.Context, o ir.Outcome) error
	FinishRun(ctx context.Context, run ir.Run) error
}

// Options configures a Driver.
type Options struct {
	// Sentinel ends the run when a trimmed line equals it.
	// Empty disables the sentinel; the run then ends at EOF.
	Sentinel string

	// StopOnError ends the run at the first failed record.
	StopOnError bool

	// Source names the input (file path or "stdin") for the journal.
	Source string

	// RunIDs generates the run ID. Defaults to UUIDv7Generator.
	RunIDs RunIDGenerator

	// Journal is optional.
	Journal Journal

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Driver runs the read-process-emit loop.
type Driver struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Driver.
func New(opts Options) *Driver {
	if opts.RunIDs == nil {
		opts.RunIDs = UUIDv7Generator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{opts: opts, logger: logger}
}

// Run processes lines from r until the sentinel, EOF, cancellation, or
// (with StopOnError) the first failure. Blank lines are skipped and do not
// consume a sequence number.
//
// Per-record failures are not returned as errors; they are counted in the
// returned Run and delivered to sink. Run returns an error only when ctx is
// done or when reading input, the sink, or the journal fails. The Run is
// returned in every case.
func (d *Driver) Run(ctx context.Context, r io.Reader, sink Sink) (*ir.Run, error) {
	run := &ir.Run{
		ID:       d.opts.RunIDs.Generate(),
		Source:   d.opts.Source,
		Sentinel: d.opts.Sentinel,
		Status:   ir.RunStatusRunning,
	}
	log := d.logger.With("run_id", run.ID)

	if d.opts.Journal != nil {
		if err := d.opts.Journal.BeginRun(ctx, *run); err != nil {
			return run, fmt.Errorf("begin run: %w", err)
		}
	}
	log.Info("run started", "source", run.Source, "sentinel", run.Sentinel)

	err := d.loop(ctx, r, sink, run, log)
	if err != nil && run.Status == ir.RunStatusRunning {
		run.Status = ir.RunStatusAborted
	}

	if d.opts.Journal != nil {
		// Record the final state even if ctx is done.
		if finishErr := d.opts.Journal.FinishRun(context.WithoutCancel(ctx), *run); finishErr != nil && err == nil {
			err = fmt.Errorf("finish run: %w", finishErr)
		}
	}

	log.Info("run finished",
		"status", run.Status,
		"processed", run.Processed,
		"succeeded", run.Succeeded,
		"failed", run.Failed,
	)
	return run, err
}

func (d *Driver) loop(ctx context.Context, r io.Reader, sink Sink, run *ir.Run, log *slog.Logger) error {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(r, done)

	var seq int64
	for {
		// Checked first so a cancel wins over an already buffered line.
		if err := ctx.Err(); err != nil {
			run.Status = ir.RunStatusCanceled
			return err
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			run.Status = ir.RunStatusCanceled
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			if err := <-readErr; err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			run.Status = ir.RunStatusEOF
			return nil
		}

		trimmed := strings.TrimSpace(line)
		if d.opts.Sentinel != "" && trimmed == d.opts.Sentinel {
			run.Status = ir.RunStatusSentinel
			return nil
		}
		if trimmed == "" {
			continue
		}

		seq++
		outcome := Process(seq, trimmed)
		outcome.RunID = run.ID

		run.Processed++
		if outcome.Failed() {
			run.Failed++
			log.Warn("record failed",
				"seq", seq,
				"identifier", outcome.Input.Identifier,
				"code", outcome.ErrorCode,
				"error", outcome.ErrorMessage,
			)
		} else {
			run.Succeeded++
			log.Debug("record renumbered", "seq", seq, "identifier", outcome.Output.Identifier)
		}

		if d.opts.Journal != nil {
			if err := d.opts.Journal.WriteOutcome(ctx, outcome); err != nil {
				return fmt.Errorf("journal record %d: %w", seq, err)
			}
		}
		if err := sink.Emit(outcome); err != nil {
			return fmt.Errorf("emit record %d: %w", seq, err)
		}

		if outcome.Failed() && d.opts.StopOnError {
			run.Status = ir.RunStatusStopped
			return nil
		}
	}
}

// readLines scans r on its own goroutine so the loop can stop on ctx while
// a read is blocked, e.g. on an idle terminal. lines is closed at EOF or on
// a read error, after which readErr yields the scanner error (nil at EOF).
// Once done is closed the goroutine exits at its next line; a Read that
// never returns keeps it parked until r is closed.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}
