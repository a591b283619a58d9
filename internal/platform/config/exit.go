package config

import (
	"fmt"
	"os"
)

// Exitf reports a fatal configuration problem on stderr and exits with
// code 1. Command entry points call it before logging is configured.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
