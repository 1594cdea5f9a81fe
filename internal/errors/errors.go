// Package errors holds the CLI-boundary error helpers. Recoverable
// failures (a save that will be retried, a degraded load) are logged
// and surfaced as warnings by their owners and never come through here;
// Fatal is reserved for conditions the process cannot continue past.
package errors

import (
	"fmt"
	"os"

	"github.com/pedrohrf/ironlog/internal/logger"
)

// Format renders an error for terminal output with a consistent
// "Error: " prefix.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs the error, prints it to stderr and exits with code 1.
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}
