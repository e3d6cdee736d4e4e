// strand is the command-line front end of the design engine: it loads
// YAML design documents, runs sequence resolution or combinatorial
// expansion over them, and writes the results back out.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
