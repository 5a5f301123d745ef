package renumber

import (
	"github.com/roach88/atommap/internal/ir"
	"github.com/roach88/atommap/internal/scanner"
)

// Analysis is the scan and renumber map for one notation.
type Analysis struct {
	Occurrences []ir.TagOccurrence
	Map         *Map
}

// Analyze scans notation and builds its renumber map.
func Analyze(notation string) (*Analysis, error) {
	occs, err := scanner.Scan(notation)
	if err != nil {
		return nil, err
	}

	m, err := BuildMap(ir.Tags(occs))
	if err != nil {
		return nil, err
	}

	return &Analysis{Occurrences: occs, Map: m}, nil
}

// Renumber compacts the tags of rec.Notation to 1..K and translates
// rec.Indices to match. The identifier is returned unchanged and rec is
// not modified.
func Renumber(rec ir.Record) (ir.Record, error) {
	a, err := Analyze(rec.Notation)
	if err != nil {
		return ir.Record{}, err
	}

	indices, err := TranslateIndices(rec.Indices, a.Map)
	if err != nil {
		return ir.Record{}, err
	}

	notation, err := Rewrite(rec.Notation, a.Occurrences, a.Map)
	if err != nil {
		return ir.Record{}, err
	}

	return ir.Record{Identifier: rec.Identifier, Notation: notation, Indices: indices}, nil
}
