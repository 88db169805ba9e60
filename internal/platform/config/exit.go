package config

import (
	"fmt"
	"io"
	"os"
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}

// ExitOnError calls Exitf with a "<name>: <err>" message when err is set.
func ExitOnError(name string, err error) {
	if err != nil {
		Exitf("%s: %v", name, err)
	}
}
