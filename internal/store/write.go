package store

import (
	"context"
	"fmt"

	"github.com/roach88/atommap/internal/ir"
)

// BeginRun inserts a run record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - reusing a run ID keeps
// the original row.
func (s *Store) BeginRun(ctx context.Context, run ir.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, source, sentinel, status, processed, succeeded, failed, engine_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Source,
		run.Sentinel,
		string(run.Status),
		run.Processed,
		run.Succeeded,
		run.Failed,
		ir.EngineVersion,
		ir.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// WriteOutcome inserts one processed line.
// Uses ON CONFLICT DO NOTHING for idempotency - duplicate (run_id, seq) writes
// are silently ignored.
//
// Note: The run referenced by RunID must exist (foreign key constraint).
func (s *Store) WriteOutcome(ctx context.Context, o ir.Outcome) error {
	inputIndices, err := marshalIndices(o.Input.Indices)
	if err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	outputIndices, err := marshalIndices(o.Output.Indices)
	if err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO outcomes
		(run_id, seq, line, record_id, identifier, input_notation, input_indices,
		 output_notation, output_indices, error_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		o.RunID,
		o.Seq,
		o.Line,
		o.RecordID,
		o.Input.Identifier,
		o.Input.Notation,
		inputIndices,
		o.Output.Notation,
		outputIndices,
		o.ErrorCode,
		o.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	return nil
}

// FinishRun records the final status and counters of a run.
// Returns ErrRunNotFound if BeginRun was never called for run.ID.
func (s *Store) FinishRun(ctx context.Context, run ir.Run) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, processed = ?, succeeded = ?, failed = ?
		WHERE id = ?
	`,
		string(run.Status),
		run.Processed,
		run.Succeeded,
		run.Failed,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", run.ID, ErrRunNotFound)
	}
	return nil
}
