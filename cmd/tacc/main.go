// Command tacc is the CLI front end for the compiler: lex, parse, check,
// and run a source file.
package main

import (
	"fmt"
	"os"

	"github.com/tacc-lang/tacc/cmd/tacc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
