package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/drydrift/drydrift/internal/drift"
	"github.com/drydrift/drydrift/internal/harness"
	"github.com/drydrift/drydrift/internal/ledger"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Root     string
	Flag     string
	Database string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [flags] -- <command> [args...]",
		Short: "Prove a command's dry-run mode has no side effects",
		Long: `Snapshot the working root, run the command with the dry-run flag
appended to its argument list, and verify the tree did not change.

The command runs with its working directory set to the working root. The
snapshot is always released, whether or not drift is found.

Exit codes:
  0  dry-run left the tree untouched
  1  drift detected or unexpected exit code
  2  harness error (unreadable tree, bad flags, etc.)

Example:
  drydrift check -- mytool apply
  drydrift check --flag=-n --root ./work -- rsync src/ dst/`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", ".", "working root the command operates on")
	cmd.Flags().StringVar(&opts.Flag, "flag", harness.DefaultDryRunFlag, "dry-run marker token appended to the argument list")
	cmd.Flags().StringVar(&opts.Database, "db", "", "optional SQLite ledger recording the outcome")

	return cmd
}

func runCheck(opts *CheckOptions, args []string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return WrapExitError(ExitCommandError, "resolve working root", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("working root %q is not a directory", opts.Root))
	}

	harnessOpts := []harness.Option{
		harness.WithDryRunFlag(opts.Flag),
		harness.WithLogger(slog.Default()),
	}
	if opts.Database != "" {
		l, err := ledger.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "open ledger", err)
		}
		defer func() {
			if closeErr := l.Close(); closeErr != nil {
				slog.Error("error closing ledger", "error", closeErr)
			}
		}()
		harnessOpts = append(harnessOpts, harness.WithLedger(l))
	}

	command := execCommand{stdout: cmd.ErrOrStderr(), stderr: cmd.ErrOrStderr()}
	h := harness.New(root, command, harnessOpts...)

	checkErr := h.DryRunCheck(cmd.Context(), args)
	if checkErr == nil {
		return out.Success(fmt.Sprintf("dry-run is clean: %q left %s untouched", args, opts.Root))
	}

	var de *drift.Error
	if errors.As(checkErr, &de) {
		if ferr := out.Failure(de.Error()); ferr != nil {
			return ferr
		}
		return NewExitError(ExitFailure, "dry-run mutated the working tree")
	}
	if harness.IsUnexpectedExitCode(checkErr) {
		return WrapExitError(ExitFailure, "dry-run command failed", checkErr)
	}
	return WrapExitError(ExitCommandError, "dry-run check failed", checkErr)
}

// configureLogging installs the default slog handler for CLI runs.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
