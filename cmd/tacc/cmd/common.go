package cmd

import (
	"fmt"
	"os"

	tacerrors "github.com/tacc-lang/tacc/internal/errors"
)

// resolveSource implements the CLI's input-argument contract: exactly one
// positional argument, the source file path. Zero args or more than one
// are user-recoverable conditions, not failures -- they print a message
// and the command still exits normally, matching the driver's rule that
// exit status is never used to signal compile or usage errors.
func resolveSource(args []string) (content, filename string, done bool) {
	switch {
	case len(args) == 0:
		fmt.Println("Please provide an input file.")
		return "", "", true
	case len(args) > 1:
		fmt.Println("Too many commandline arguments.")
		return "", "", true
	}

	filename = args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		ioErr := &tacerrors.IoError{Path: filename, Err: err}
		fmt.Println(ioErr)
		return "", "", true
	}
	return string(data), filename, false
}
