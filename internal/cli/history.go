package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/drydrift/drydrift/internal/ledger"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded harness outcomes",
		Long: `List run-history records from a drydrift ledger, newest first.

Example:
  drydrift history --db ./drydrift.db --limit 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite ledger (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "maximum records to list (0 for all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	l, err := ledger.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open ledger", err)
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			slog.Error("error closing ledger", "error", closeErr)
		}
	}()

	records, err := l.History(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "read history", err)
	}

	if opts.Format == "json" {
		return out.Success(records)
	}

	if len(records) == 0 {
		return out.Success("no records")
	}
	for _, rec := range records {
		line := fmt.Sprintf("%s  %-13s %-5s %s",
			rec.CreatedAt.Format(time.RFC3339), rec.Kind, rec.Status, strings.Join(rec.Args, " "))
		if rec.Scenario != "" {
			line += fmt.Sprintf("  [%s]", rec.Scenario)
		}
		if len(rec.Drifted) > 0 {
			line += fmt.Sprintf("  drifted: %s", strings.Join(rec.Drifted, ", "))
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}
	return nil
}
