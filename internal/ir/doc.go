// Package ir provides the shared record and error types for atommap.
//
// This package contains type definitions and serialization only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Records are values: the engine never mutates its input
//   - Spans are half-open byte ranges over the notation
//   - Canonical JSON has sorted keys, NFC strings, and no floats
//   - Record IDs hash identifier and notation bytes verbatim
package ir
