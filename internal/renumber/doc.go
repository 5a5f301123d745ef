// Package renumber compacts the atom-map tags of a record to 1..K.
//
// The engine is a pure function from (notation, indices) to
// (notation', indices'):
//
//  1. scanner.Scan finds every tag and its digit span
//  2. BuildMap assigns each distinct tag its 1-based rank
//  3. Rewrite replaces digit spans right to left
//  4. TranslateIndices maps each index v through tag v+1
//
// Every call allocates its own state, so Renumber is safe to call from many
// goroutines on independent records. Errors are *ir.Error values and are
// never replaced by defaults.
package renumber
