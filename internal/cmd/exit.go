package cmd

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitNotDirectory = 2
	ExitNoInputFiles = 3
	ExitPartial      = 4
	ExitInterrupted  = 130
)

// ExitError carries the process exit code for an error returned by a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned from command execution to an exit code.
// Errors without an ExitError, such as cobra argument errors, map to ExitUsage.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}
