// Package scanner locates atom-map tags in bracket atoms of a mapped SMILES
// string.
//
// A tag is the maximal digit run after a ':' that sits inside an open
// bracket. Colons outside brackets (aromatic bonds) are ignored. The scanner
// does not validate the rest of the grammar.
package scanner

import (
	"math"

	"github.com/roach88/atommap/internal/ir"
)

// Scan returns every tag occurrence in notation, left to right.
//
// Returns an *ir.Error with code MALFORMED_INPUT when brackets are
// unbalanced, when an in-bracket colon is not followed by a digit, or when
// a tag is zero or does not fit in an int. A notation without tags is not an
// error here; callers decide what an empty result means.
func Scan(notation string) ([]ir.TagOccurrence, error) {
	var (
		occs  []ir.TagOccurrence
		depth int
		open  int // offset of the outermost unmatched '['
	)

	for i := 0; i < len(notation); i++ {
		switch notation[i] {
		case '[':
			if depth == 0 {
				open = i
			}
			depth++
		case ']':
			if depth == 0 {
				return nil, ir.NewMalformedError(i, "unmatched ']'")
			}
			depth--
		case ':':
			if depth == 0 {
				continue
			}
			occ, err := scanTag(notation, i+1)
			if err != nil {
				return nil, err
			}
			occs = append(occs, occ)
			i = occ.Span.End - 1
		}
	}

	if depth > 0 {
		return nil, ir.NewMalformedError(open, "unclosed '['")
	}

	return occs, nil
}

// scanTag parses the digit run starting at start.
func scanTag(notation string, start int) (ir.TagOccurrence, error) {
	end := start
	tag := 0
	for end < len(notation) && isDigit(notation[end]) {
		d := int(notation[end] - '0')
		if tag > (math.MaxInt-d)/10 {
			return ir.TagOccurrence{}, ir.NewMalformedError(start, "tag %q overflows", notation[start:end+1])
		}
		tag = tag*10 + d
		end++
	}

	if end == start {
		return ir.TagOccurrence{}, ir.NewMalformedError(start-1, "':' inside brackets is not followed by digits")
	}
	if tag == 0 {
		return ir.TagOccurrence{}, ir.NewMalformedError(start, "tag must be positive, got %q", notation[start:end])
	}

	return ir.TagOccurrence{Tag: tag, Span: ir.Span{Start: start, End: end}}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
