package renumber

import (
	"slices"
	"strconv"

	"github.com/roach88/atommap/internal/ir"
)

// Rewrite replaces each occurrence's digit span with its new tag.
//
// Occurrences are processed right to left so that a length change at one
// span never shifts the offsets of spans still to be written. Bytes outside
// the spans are copied unchanged.
//
// occs must be the left-to-right output of scanner.Scan for notation.
// Spans that are out of bounds or out of order, or tags missing from m,
// return MALFORMED_INPUT.
func Rewrite(notation string, occs []ir.TagOccurrence, m *Map) (string, error) {
	buf := []byte(notation)

	limit := len(buf)
	for i := len(occs) - 1; i >= 0; i-- {
		occ := occs[i]
		if occ.Span.Start < 0 || occ.Span.Start >= occ.Span.End || occ.Span.End > limit {
			return "", ir.NewMalformedError(occ.Span.Start, "tag span %s is out of order or out of bounds", occ.Span)
		}

		newTag, ok := m.Lookup(occ.Tag)
		if !ok {
			return "", ir.NewMalformedError(occ.Span.Start, "tag %d has no renumbering", occ.Tag)
		}

		buf = slices.Replace(buf, occ.Span.Start, occ.Span.End, []byte(strconv.Itoa(newTag))...)
		limit = occ.Span.Start
	}

	return string(buf), nil
}
