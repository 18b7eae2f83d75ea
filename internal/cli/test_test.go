//go:build unix

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTestCommand_PassingScenario(t *testing.T) {
	path := writeScenario(t, "clean.yaml", `
name: clean_dry_run
description: "a no-op script passes the dry-run check"
setup:
  - path: a.txt
    content: hello
steps:
  - dry_run_check: [sh, -c, ":"]
`)

	out, err := runCLI(t, "test", path)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS clean_dry_run")
}

func TestTestCommand_FailingScenario(t *testing.T) {
	path := writeScenario(t, "dirty.yaml", `
name: dirty_dry_run
description: "a script that writes a file fails the dry-run check"
setup:
  - path: a.txt
    content: hello
steps:
  - dry_run_check: [sh, -c, "touch c.txt"]
`)

	out, err := runCLI(t, "test", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL dirty_dry_run")
}

func TestTestCommand_MultipleScenarios(t *testing.T) {
	first := writeScenario(t, "first.yaml", `
name: first
description: "plain run step"
steps:
  - run: [sh, -c, ":"]
`)
	second := writeScenario(t, "second.yaml", `
name: second
description: "expected non-zero exit"
steps:
  - run: [sh, -c, "exit 2"]
    exit_code: 2
`)

	out, err := runCLI(t, "test", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS first")
	assert.Contains(t, out, "PASS second")
}

func TestTestCommand_MissingScenarioFile(t *testing.T) {
	_, err := runCLI(t, "test", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_MalformedScenario(t *testing.T) {
	path := writeScenario(t, "bad.yaml", "name: only_a_name\n")

	_, err := runCLI(t, "test", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
