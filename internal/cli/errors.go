// Package cli holds configuration loading and exit handling shared by the
// factiondb commands.
package cli

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes distinguish the failure class for scripts wrapping the CLI:
// deploy tooling retries connection failures but treats a broken chain as a
// build problem.
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitConfig     = 2
	ExitChainError = 3
	ExitDBConnect  = 4
)

// ExitError carries the process exit code alongside the error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitWithError prints err to stderr and terminates the process, using the
// ExitError's code when err carries one and ExitGeneral otherwise.
func ExitWithError(err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Error())
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitGeneral)
}

// ConfigError marks a failure in configuration loading or validation.
func ConfigError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitConfig, Message: msg, Err: err}
}

// ChainError marks a structural chain defect or an unknown version.
func ChainError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitChainError, Message: msg, Err: err}
}

// DBConnectError marks a failure to reach the database.
func DBConnectError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitDBConnect, Message: msg, Err: err}
}

// GeneralError marks any other failure.
func GeneralError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitGeneral, Message: msg, Err: err}
}
