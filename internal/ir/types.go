package ir

import "fmt"

// Record is one unit of work: an opaque identifier, a mapped notation, and
// an index tuple that references tags in the notation (index = tag - 1).
type Record struct {
	Identifier string `json:"identifier"`
	Notation   string `json:"notation"`
	Indices    []int  `json:"indices"`
}

// Span is a half-open byte range [Start, End) within a notation.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// TagOccurrence is one atom-map tag found in a notation.
// Span covers only the digit run, never the leading colon.
type TagOccurrence struct {
	Tag  int  `json:"tag"`
	Span Span `json:"span"`
}

// Tags returns the tag values of occs in order of appearance.
func Tags(occs []TagOccurrence) []int {
	tags := make([]int, len(occs))
	for i, occ := range occs {
		tags[i] = occ.Tag
	}
	return tags
}
