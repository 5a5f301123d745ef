package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/atommap/internal/ir"
)

// ErrRunNotFound is returned when a run ID has no journal entry.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns a single run by ID.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, sentinel, status, processed, succeeded, failed
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return ir.Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns all runs in insertion order.
// Returns an empty slice (not nil) if the journal is empty.
func (s *Store) ListRuns(ctx context.Context) ([]ir.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, sentinel, status, processed, succeeded, failed
		FROM runs
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadOutcomes returns the outcomes of a run ordered by seq.
// If failedOnly is set, successful outcomes are skipped.
// Returns an empty slice (not nil) if the run has no outcomes.
func (s *Store) ReadOutcomes(ctx context.Context, runID string, failedOnly bool) ([]ir.Outcome, error) {
	query := `
		SELECT run_id, seq, line, record_id, identifier, input_notation, input_indices,
		       output_notation, output_indices, error_code, error_message
		FROM outcomes
		WHERE run_id = ?`
	if failedOnly {
		query += ` AND error_code != ''`
	}
	query += ` ORDER BY seq ASC`

	return s.queryOutcomes(ctx, query, runID)
}

// FindOutcomesByRecord returns every journaled outcome for a record ID
// across all runs, oldest run first.
func (s *Store) FindOutcomesByRecord(ctx context.Context, recordID string) ([]ir.Outcome, error) {
	return s.queryOutcomes(ctx, `
		SELECT o.run_id, o.seq, o.line, o.record_id, o.identifier, o.input_notation, o.input_indices,
		       o.output_notation, o.output_indices, o.error_code, o.error_message
		FROM outcomes o
		JOIN runs r ON o.run_id = r.id
		WHERE o.record_id = ?
		ORDER BY r.rowid ASC, o.seq ASC
	`, recordID)
}

func (s *Store) queryOutcomes(ctx context.Context, query string, args ...any) ([]ir.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []ir.Outcome{}
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (ir.Run, error) {
	var run ir.Run
	var status string
	if err := row.Scan(&run.ID, &run.Source, &run.Sentinel, &status, &run.Processed, &run.Succeeded, &run.Failed); err != nil {
		return ir.Run{}, err
	}
	run.Status = ir.RunStatus(status)
	return run, nil
}

func scanOutcome(row scanner) (ir.Outcome, error) {
	var (
		o              ir.Outcome
		inputIndices   string
		outputNotation string
		outputIndices  string
	)
	err := row.Scan(
		&o.RunID,
		&o.Seq,
		&o.Line,
		&o.RecordID,
		&o.Input.Identifier,
		&o.Input.Notation,
		&inputIndices,
		&outputNotation,
		&outputIndices,
		&o.ErrorCode,
		&o.ErrorMessage,
	)
	if err != nil {
		return ir.Outcome{}, fmt.Errorf("scan outcome: %w", err)
	}

	if o.Input.Indices, err = unmarshalIndices(inputIndices); err != nil {
		return ir.Outcome{}, fmt.Errorf("outcome %s/%d: %w", o.RunID, o.Seq, err)
	}

	if !o.Failed() {
		o.Output.Identifier = o.Input.Identifier
		o.Output.Notation = outputNotation
		if o.Output.Indices, err = unmarshalIndices(outputIndices); err != nil {
			return ir.Outcome{}, fmt.Errorf("outcome %s/%d: %w", o.RunID, o.Seq, err)
		}
	}

	return o, nil
}
