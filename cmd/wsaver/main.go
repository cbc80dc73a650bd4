package main

import (
	"errors"
	"os"

	"github.com/1broseidon/wsaver/internal/profile"
)

// Exit codes. Restore distinguishes a partial (timed-out) restoration from a
// missing profile so scripts can tell them apart.
const (
	exitOK       = 0
	exitFatal    = 1
	exitNotFound = 3
	exitTimedOut = 4
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		switch {
		case errors.As(err, &ee):
			os.Exit(ee.code)
		case errors.Is(err, profile.ErrNotFound):
			os.Exit(exitNotFound)
		default:
			os.Exit(exitFatal)
		}
	}
}

// exitError carries a specific process exit code up through cobra.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}
