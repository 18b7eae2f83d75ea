// Package harness proves that a command's dry-run mode performs no side
// effects.
//
// The harness owns a working root (the directory tree the command under
// test operates on) and drives the command through an injected Command
// boundary that returns an exit code. Two operations exist:
//
//   - Run executes the command and asserts the configured success exit
//     code. Any other code is a fatal failure, never retried.
//   - DryRunCheck captures a snapshot of the working root, executes the
//     command with the configured dry-run flag appended to its argument
//     list, and verifies that the working root is byte-for-byte and
//     structurally identical to the snapshot. The snapshot is released
//     unconditionally, on success and on every failure path.
//
// # Working-directory discipline
//
// The command under test runs with the process working directory switched
// to the working root. The working directory is process-wide mutable
// state, so every execution window is serialized through a single
// package-level mutex and the original directory is restored via deferred
// release on all exit paths. Tests that use the harness must not run
// concurrently with each other.
//
// # Scenarios
//
// Scenarios are YAML files describing a fixture tree and a sequence of run
// and dry-run-check steps. RunScenario executes one scenario in a fresh
// working root and produces a Result with an ordered report of events;
// RunScenarioWithGolden compares that report against a golden file.
package harness
