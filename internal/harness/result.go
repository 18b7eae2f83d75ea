package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drydrift/drydrift/internal/drift"
	"github.com/drydrift/drydrift/internal/ledger"
)

// Event statuses used in scenario reports. Deliberately free of absolute
// paths and timestamps so reports stay stable across runs and machines.
const (
	EventPass     = "pass"
	EventDrift    = "drift"
	EventExitCode = "unexpected_exit_code"
	EventError    = "error"
)

// ReportEvent is one executed step in a scenario report.
type ReportEvent struct {
	Kind     string   `json:"kind"` // ledger.KindRun or ledger.KindDryRunCheck
	Args     []string `json:"args"`
	Status   string   `json:"status"`
	ExitCode int      `json:"exit_code"`
	Drifted  []string `json:"drifted,omitempty"` // canonical paths, sorted
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: every step behaved.
	Pass bool

	// Events reports each executed step in order. Execution stops at the
	// first failing step, so the last event carries the failure.
	Events []ReportEvent

	// Errors contains the failure messages. Empty when Pass is true.
	Errors []string
}

// addError appends a failure message and marks the result failed.
func (r *Result) addError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// RunScenario executes a scenario against the given command boundary.
//
// Each scenario runs in a fresh working root created under the system
// temporary directory and removed before RunScenario returns, regardless of
// outcome. Execution stops at the first failing step. The returned error is
// reserved for infrastructure problems (fixture creation, cleanup); step
// failures are reported through the Result.
func RunScenario(scenario *Scenario, cmd Command, opts ...Option) (*Result, error) {
	workingRoot, err := os.MkdirTemp("", "drydrift-work-")
	if err != nil {
		return nil, fmt.Errorf("allocate working root: %w", err)
	}
	defer os.RemoveAll(workingRoot)

	if err := materializeSetup(workingRoot, scenario.Setup); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	if scenario.DryRunFlag != "" {
		opts = append(opts, WithDryRunFlag(scenario.DryRunFlag))
	}
	opts = append(opts, WithScenarioName(scenario.Name))
	h := New(workingRoot, cmd, opts...)

	ctx := context.Background()
	result := &Result{Pass: true}

	for i, step := range scenario.Steps {
		event, stepErr := h.runStep(ctx, step)
		result.Events = append(result.Events, event)
		if stepErr != nil {
			result.addError(fmt.Sprintf("step %d: %v", i+1, stepErr))
			break
		}
	}

	return result, nil
}

// runStep executes one scenario step and renders it as a report event.
func (h *Harness) runStep(ctx context.Context, step Step) (ReportEvent, error) {
	if len(step.Run) > 0 {
		code, err := h.runExpect(ctx, step.Run, step.ExitCode)
		return reportEvent(ledger.KindRun, step.Run, code, err), err
	}

	code, err := h.dryRunCheck(ctx, step.DryRunCheck)
	dryArgs := append(append([]string{}, step.DryRunCheck...), h.dryRunFlag)
	return reportEvent(ledger.KindDryRunCheck, dryArgs, code, err), err
}

// reportEvent classifies a step outcome. Drift failures carry their
// canonical paths; other failures are classified without free-form error
// text to keep reports deterministic.
func reportEvent(kind string, args []string, code int, err error) ReportEvent {
	event := ReportEvent{Kind: kind, Args: args, ExitCode: code}

	var de *drift.Error
	switch {
	case err == nil:
		event.Status = EventPass
	case errors.As(err, &de):
		event.Status = EventDrift
		event.Drifted = de.Paths()
	case IsUnexpectedExitCode(err):
		event.Status = EventExitCode
	default:
		event.Status = EventError
	}

	return event
}

// materializeSetup creates the fixture tree described by entries.
func materializeSetup(root string, entries []SetupEntry) error {
	for _, entry := range entries {
		if entry.Dir != "" {
			if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(entry.Dir)), 0o755); err != nil {
				return fmt.Errorf("setup dir %q: %w", entry.Dir, err)
			}
			continue
		}

		rel := strings.TrimPrefix(entry.Path, "/")
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("setup file %q: %w", entry.Path, err)
		}
		if err := os.WriteFile(path, []byte(entry.Content), 0o644); err != nil {
			return fmt.Errorf("setup file %q: %w", entry.Path, err)
		}
	}
	return nil
}
