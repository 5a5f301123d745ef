// Package driver feeds text records through the renumbering engine.
//
// The driver reads one record per line until a sentinel line or EOF. Each
// line is handled on its own: a parse or engine failure produces a failed
// ir.Outcome, is reported to the Sink and the Journal, and the loop moves
// on to the next line. Only StopOnError, context cancellation, or a Sink or
// Journal failure end a run early.
//
// Like a single-writer event loop, Run processes lines one at a time in
// input order, so outcome sequence numbers are deterministic.
package driver
