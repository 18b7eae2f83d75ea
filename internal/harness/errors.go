package harness

import (
	"errors"
	"fmt"
	"strings"
)

// UnexpectedExitCodeError reports a command under test that returned a
// different exit code than the harness required. Fatal to the test case;
// never retried.
type UnexpectedExitCodeError struct {
	Args []string // argument list as executed
	Code int      // exit code the command returned
	Want int      // exit code the harness required
}

// Error implements the error interface.
func (e *UnexpectedExitCodeError) Error() string {
	return fmt.Sprintf("command %q exited with code %d, want %d",
		strings.Join(e.Args, " "), e.Code, e.Want)
}

// CleanupError reports a snapshot location that could not be deleted after
// verification. It is only returned when no earlier failure occurred; a
// drift or execution failure always takes priority.
type CleanupError struct {
	Path string // snapshot location that survived
	Err  error  // underlying deletion error
}

// Error implements the error interface.
func (e *CleanupError) Error() string {
	return fmt.Sprintf("snapshot cleanup failed: %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying deletion error.
func (e *CleanupError) Unwrap() error {
	return e.Err
}

// IsUnexpectedExitCode reports whether err is (or wraps) an
// UnexpectedExitCodeError.
func IsUnexpectedExitCode(err error) bool {
	var ee *UnexpectedExitCodeError
	return errors.As(err, &ee)
}
