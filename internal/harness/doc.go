// Package harness runs conformance scenarios against the renumbering driver.
//
// A scenario is a YAML file listing record lines and the output or error
// code each must produce:
//
//	name: worked-example
//	description: Renumbers the documented example
//	cases:
//	  - name: t61g
//	    input: 't61g [C:3]([N+:4]1...)[H:13] (2, 3, 6, 18)'
//	    expect:
//	      output: 't61g [C:1]([N+:2]1...)[H:8] (0, 1, 4, 13)'
//	summary:
//	  status: eof
//	  processed: 1
//	  succeeded: 1
//	  failed: 0
//
// Each scenario runs through driver.Driver with a fresh in-memory journal
// and a fixed run ID. Outcomes are read back from the journal before they
// are checked, so every scenario also exercises the store.
//
// Golden snapshots capture the canonical JSON of each run. Regenerate them
// with:
//
//	go test ./internal/harness -update
package harness
