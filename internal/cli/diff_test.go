package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drydrift/drydrift/internal/testutil"
)

// runCLI executes the root command with args and captured output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDiffCommand_IdenticalTrees(t *testing.T) {
	entries := map[string]string{"a.txt": "hello", "b/": ""}
	left := testutil.TempTree(t, entries)
	right := testutil.TempTree(t, entries)

	out, err := runCLI(t, "diff", left, right)
	require.NoError(t, err)
	assert.Contains(t, out, "identical")
}

func TestDiffCommand_Drift(t *testing.T) {
	left := testutil.TempTree(t, map[string]string{"a.txt": "hello"})
	right := testutil.TempTree(t, map[string]string{"a.txt": "changed"})

	out, err := runCLI(t, "diff", left, right)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "changed: a.txt")
}

func TestDiffCommand_MissingTree(t *testing.T) {
	left := testutil.TempTree(t, map[string]string{"a.txt": "x"})

	_, err := runCLI(t, "diff", left, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDiffCommand_JSONFormat(t *testing.T) {
	entries := map[string]string{"a.txt": "hello"}
	left := testutil.TempTree(t, entries)
	right := testutil.TempTree(t, entries)

	out, err := runCLI(t, "--format", "json", "diff", left, right)
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := runCLI(t, "--format", "xml", "diff", "a", "b")
	assert.Error(t, err)
}
