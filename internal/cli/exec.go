package cli

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/drydrift/drydrift/internal/harness"
)

// execCommand adapts an external process to the harness Command boundary.
// The child inherits the process working directory, which the harness has
// already switched to the working root.
type execCommand struct {
	stdout io.Writer
	stderr io.Writer
}

// Execute implements harness.Command. A non-zero child exit status is an
// exit code, not an error; errors are reserved for failures to start the
// process at all.
func (c execCommand) Execute(ctx context.Context, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

var _ harness.Command = execCommand{}
