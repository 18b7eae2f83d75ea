package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/drydrift/drydrift/internal/drift"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Verify two directory trees are identical",
		Long: `Verify that two directory trees are structurally and byte-for-byte
identical. Comparison is case-insensitive on relative paths.

Exit codes:
  0  trees are identical
  1  trees drifted
  2  a tree could not be read

Example:
  drydrift diff ./before ./after`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runDiff(opts *RootOptions, left, right string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	err := drift.Verify(left, right)
	if err == nil {
		return out.Success("trees are identical")
	}

	var de *drift.Error
	if errors.As(err, &de) {
		if ferr := out.Failure(de.Error()); ferr != nil {
			return ferr
		}
		return NewExitError(ExitFailure, "trees drifted")
	}

	return WrapExitError(ExitCommandError, "verification failed", err)
}
