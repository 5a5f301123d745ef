// Package store provides a SQLite-backed journal of driver runs.
//
// The journal is append-only:
//   - Runs: one row per pass over an input stream, updated once on finish
//   - Outcomes: one row per processed line, keyed by (run_id, seq)
//
// # Patterns
//
// Logical ordering
//   - Outcomes are ordered by seq within a run, never by wall time
//   - Runs are listed in insertion order
//
// Idempotent writes
//   - ON CONFLICT DO NOTHING on both tables
//   - Re-journaling the same run and seq is a no-op
//
// Content-addressed inputs
//   - record_id is ir.RecordID of the parsed input, so the same record can
//     be found across runs
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
