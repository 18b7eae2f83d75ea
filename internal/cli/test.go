package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/drydrift/drydrift/internal/harness"
	"github.com/drydrift/drydrift/internal/ledger"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Database string
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenario.yaml>...",
		Short: "Run dry-run conformance scenarios",
		Long: `Run one or more YAML scenario files. Each scenario materializes its
fixture tree in a fresh working root, executes its steps, and reports
per-step outcomes.

Exit codes:
  0  all scenarios passed
  1  at least one scenario failed
  2  a scenario could not be loaded or executed

Example:
  drydrift test scenarios/apply.yaml scenarios/sync.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "optional SQLite ledger recording outcomes")

	return cmd
}

func runTest(opts *TestOptions, paths []string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	var harnessOpts []harness.Option
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

	failed := 0
	for _, path := range paths {
		scenario, err := harness.LoadScenario(path)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("load scenario %q", path), err)
		}

		result, err := harness.RunScenario(scenario, command, harnessOpts...)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("run scenario %q", scenario.Name), err)
		}

		if result.Pass {
			if err := out.Success(fmt.Sprintf("PASS %s (%d step(s))", scenario.Name, len(result.Events))); err != nil {
				return err
			}
			continue
		}

		failed++
		for _, msg := range result.Errors {
			if err := out.Failure(fmt.Sprintf("FAIL %s: %s", scenario.Name, msg)); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", failed))
	}
	return nil
}
