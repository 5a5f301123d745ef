// Command atommap renumbers atom-map tags in mapped SMILES records.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/atommap/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return cli.GetExitCode(err)
}
