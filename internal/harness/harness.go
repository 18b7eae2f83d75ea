package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/drydrift/drydrift/internal/drift"
	"github.com/drydrift/drydrift/internal/ledger"
	"github.com/drydrift/drydrift/internal/snapshot"
	"github.com/drydrift/drydrift/internal/testutil"
)

// DefaultDryRunFlag is the marker token appended to the argument list when
// testing dry-run behavior. It is a shared constant between the harness and
// the command implementations it tests.
const DefaultDryRunFlag = "--dry-run"

// Command executes the tool under test with the given argument list and
// returns its exit code. The harness treats the command as opaque: it never
// inspects output, only the exit status and the working tree.
//
// Execute must run the command to completion; the harness does not support
// cancelling a command that never returns.
type Command interface {
	Execute(ctx context.Context, args []string) (int, error)
}

// CommandFunc adapts a function to the Command interface.
type CommandFunc func(ctx context.Context, args []string) (int, error)

// Execute implements Command.
func (f CommandFunc) Execute(ctx context.Context, args []string) (int, error) {
	return f(ctx, args)
}

// Harness drives a command under test against a working root.
//
// The working root is exclusively owned by the harness for the lifetime of
// a test case; it is never shared between concurrent test cases.
type Harness struct {
	workingRoot string
	cmd         Command

	dryRunFlag  string
	successCode int
	snapshots   *snapshot.Store
	runLog      *ledger.Ledger
	scenario    string
	clock       testutil.Clock
	logger      *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithDryRunFlag overrides the dry-run marker token (default
// DefaultDryRunFlag).
func WithDryRunFlag(flag string) Option {
	return func(h *Harness) { h.dryRunFlag = flag }
}

// WithSuccessCode overrides the exit code treated as success (default 0).
func WithSuccessCode(code int) Option {
	return func(h *Harness) { h.successCode = code }
}

// WithSnapshotStore overrides where snapshot locations are allocated
// (default: the system temporary directory).
func WithSnapshotStore(store *snapshot.Store) Option {
	return func(h *Harness) { h.snapshots = store }
}

// WithLedger enables run-history recording. Recording is best-effort
// observability: an append failure is logged, never turned into a test
// failure.
func WithLedger(l *ledger.Ledger) Option {
	return func(h *Harness) { h.runLog = l }
}

// WithScenarioName tags ledger records with a scenario name.
func WithScenarioName(name string) Option {
	return func(h *Harness) { h.scenario = name }
}

// WithClock overrides the clock used for ledger timestamps.
func WithClock(clock testutil.Clock) Option {
	return func(h *Harness) { h.clock = clock }
}

// WithLogger overrides the harness logger. The default discards everything,
// which is what tests want.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// New creates a Harness for the given working root and command boundary.
func New(workingRoot string, cmd Command, opts ...Option) *Harness {
	h := &Harness{
		workingRoot: workingRoot,
		cmd:         cmd,
		dryRunFlag:  DefaultDryRunFlag,
		successCode: 0,
		snapshots:   snapshot.NewStore(""),
		clock:       testutil.SystemClock{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WorkingRoot returns the directory tree under test.
func (h *Harness) WorkingRoot() string {
	return h.workingRoot
}

// Run executes the command under test and asserts the configured success
// exit code. Any other exit code yields *UnexpectedExitCodeError.
func (h *Harness) Run(ctx context.Context, args []string) error {
	return h.RunExpect(ctx, args, h.successCode)
}

// RunExpect executes the command under test and asserts a specific exit
// code.
func (h *Harness) RunExpect(ctx context.Context, args []string, want int) error {
	_, err := h.runExpect(ctx, args, want)
	return err
}

func (h *Harness) runExpect(ctx context.Context, args []string, want int) (int, error) {
	code, err := h.execute(ctx, args)
	if err != nil {
		h.record(ctx, ledger.KindRun, args, code, ledger.StatusError, nil)
		return code, fmt.Errorf("execute command: %w", err)
	}
	if code != want {
		h.record(ctx, ledger.KindRun, args, code, ledger.StatusError, nil)
		return code, &UnexpectedExitCodeError{Args: args, Code: code, Want: want}
	}
	h.record(ctx, ledger.KindRun, args, code, ledger.StatusPass, nil)
	return code, nil
}

// DryRunCheck proves that the command, invoked with the dry-run flag
// appended to args, leaves the working root untouched.
//
// Sequence: capture a snapshot of the working root, execute the dry-run
// variant, verify the working root against the snapshot, and release the
// snapshot. Release is unconditional; a release failure surfaces as
// *CleanupError only when nothing worse already happened - it never masks a
// drift or execution failure (which is logged instead).
func (h *Harness) DryRunCheck(ctx context.Context, args []string) error {
	_, err := h.dryRunCheck(ctx, args)
	return err
}

func (h *Harness) dryRunCheck(ctx context.Context, args []string) (code int, err error) {
	snap, err := h.snapshots.Capture(h.workingRoot)
	if err != nil {
		return 0, fmt.Errorf("dry-run check: %w", err)
	}
	defer func() {
		relErr := snap.Release()
		if relErr == nil {
			return
		}
		if err == nil {
			err = &CleanupError{Path: snap.Root(), Err: relErr}
			return
		}
		// The earlier failure takes priority; the cleanup failure is
		// still surfaced through the log.
		h.logger.Error("snapshot release failed after earlier failure",
			"path", snap.Root(), "error", relErr)
	}()

	dryArgs := append(slices.Clone(args), h.dryRunFlag)

	code, execErr := h.execute(ctx, dryArgs)
	if execErr != nil {
		h.record(ctx, ledger.KindDryRunCheck, dryArgs, code, ledger.StatusError, nil)
		return code, fmt.Errorf("execute dry-run command: %w", execErr)
	}
	if code != h.successCode {
		h.record(ctx, ledger.KindDryRunCheck, dryArgs, code, ledger.StatusError, nil)
		return code, &UnexpectedExitCodeError{Args: dryArgs, Code: code, Want: h.successCode}
	}

	if verr := drift.Verify(snap.Root(), h.workingRoot); verr != nil {
		var de *drift.Error
		if errors.As(verr, &de) {
			h.record(ctx, ledger.KindDryRunCheck, dryArgs, code, ledger.StatusDrift, de.Paths())
		} else {
			h.record(ctx, ledger.KindDryRunCheck, dryArgs, code, ledger.StatusError, nil)
		}
		return code, verr
	}

	h.record(ctx, ledger.KindDryRunCheck, dryArgs, code, ledger.StatusPass, nil)
	return code, nil
}

// execute runs the command with the process working directory switched to
// the working root. The execution window holds the directory-mutation lock
// for its entire duration; the original directory is restored on every exit
// path.
func (h *Harness) execute(ctx context.Context, args []string) (int, error) {
	dirMutation.Lock()
	defer dirMutation.Unlock()

	restore, err := pushd(h.workingRoot)
	if err != nil {
		return 0, err
	}
	defer func() {
		if restoreErr := restore(); restoreErr != nil {
			h.logger.Error("working directory restoration failed", "error", restoreErr)
		}
	}()

	return h.cmd.Execute(ctx, args)
}

// record appends a ledger row when a ledger is configured. Best-effort:
// failures are logged, not returned.
func (h *Harness) record(ctx context.Context, kind string, args []string, code int, status string, drifted []string) {
	if h.runLog == nil {
		return
	}
	rec := ledger.Record{
		Scenario:  h.scenario,
		Kind:      kind,
		Args:      args,
		ExitCode:  code,
		Status:    status,
		Drifted:   drifted,
		CreatedAt: h.clock.Now(),
	}
	if err := h.runLog.Append(ctx, rec); err != nil {
		h.logger.Error("ledger append failed", "kind", kind, "error", err)
	}
}
