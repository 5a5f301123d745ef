package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/atommap/internal/driver"
	"github.com/roach88/atommap/internal/ir"
	"github.com/roach88/atommap/internal/record"
	"github.com/roach88/atommap/internal/store"
	"github.com/roach88/atommap/internal/testutil"
)

// Harness is the test execution engine.
// It runs scenarios with a fixed run ID against its own journal.
type Harness struct {
	store  *store.Store
	runIDs *testutil.FixedRunIDGenerator
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory journal
// 2. Feed every case line to the driver, sentinel disabled
// 3. Read the run and its outcomes back from the journal
// 4. Check each outcome and the summary against the scenario
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		runIDs: testutil.NewFixedRunIDGenerator(scenario.RunID),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	return h.run(ctx, scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	lines := make([]string, len(scenario.Cases))
	for i, c := range scenario.Cases {
		lines[i] = c.Input
	}

	d := driver.New(driver.Options{
		Source:  "scenario:" + scenario.Name,
		RunIDs:  h.runIDs,
		Journal: h.store,
		Logger:  h.logger,
	})
	// Outcomes are checked from the journal, not the sink.
	discard := driver.SinkFunc(func(ir.Outcome) error { return nil })

	run, err := d.Run(ctx, strings.NewReader(strings.Join(lines, "\n")), discard)
	if err != nil {
		return nil, fmt.Errorf("failed to run driver: %w", err)
	}

	journaled, err := h.store.ReadRun(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read run: %w", err)
	}
	outcomes, err := h.store.ReadOutcomes(ctx, run.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read outcomes: %w", err)
	}
	if len(outcomes) != len(scenario.Cases) {
		return nil, fmt.Errorf("journal holds %d outcomes for %d cases", len(outcomes), len(scenario.Cases))
	}

	result := NewResult()
	result.Run = journaled
	for i, c := range scenario.Cases {
		cr := caseResult(c, outcomes[i])
		errs := checkCase(c, cr)
		for _, msg := range errs {
			result.AddError(msg)
		}
		cr.Pass = len(errs) == 0
		result.Cases = append(result.Cases, cr)
	}
	if scenario.Summary != nil {
		for _, msg := range checkSummary(*scenario.Summary, journaled) {
			result.AddError(msg)
		}
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"run_id", run.ID,
		"pass", result.Pass,
	)
	return result, nil
}

func caseResult(c Case, o ir.Outcome) CaseResult {
	cr := CaseResult{
		Name:         c.Name,
		Input:        o.Line,
		ErrorCode:    o.ErrorCode,
		ErrorMessage: o.ErrorMessage,
	}
	if !o.Failed() {
		cr.Output = record.Format(o.Output)
	}
	return cr
}
