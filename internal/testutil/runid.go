// Package testutil holds deterministic stand-ins used by tests and the
// conformance harness.
package testutil

// DefaultRunID is returned by a FixedRunIDGenerator built with an empty id.
const DefaultRunID = "test-run-default"

// FixedRunIDGenerator hands out one run ID for every run, so journals and
// golden snapshots do not depend on UUID generation. It satisfies
// driver.RunIDGenerator and is safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator returns a generator for id, or for DefaultRunID
// when id is empty.
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunIDGenerator{id: id}
}

func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
