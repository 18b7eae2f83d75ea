package drift

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drydrift/drydrift/internal/testutil"
)

func TestVerify_IdenticalTrees(t *testing.T) {
	entries := map[string]string{
		"a.txt":     "hello",
		"b/":        "",
		"sub/c.txt": "content",
	}
	left := testutil.TempTree(t, entries)
	right := testutil.TempTree(t, entries)

	assert.NoError(t, Verify(left, right))
}

func TestVerify_BothEmpty(t *testing.T) {
	assert.NoError(t, Verify(t.TempDir(), t.TempDir()))
}

func TestVerify_SingleByteDrift(t *testing.T) {
	left := testutil.TempTree(t, map[string]string{"a.txt": "hello"})
	right := testutil.TempTree(t, map[string]string{"a.txt": "hellp"})

	err := Verify(left, right)
	require.Error(t, err)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"a.txt"}, de.Changed)
	assert.Empty(t, de.Added)
	assert.Empty(t, de.Removed)
}

func TestVerify_AddedFile(t *testing.T) {
	left := testutil.TempTree(t, map[string]string{"a.txt": "hello"})
	right := testutil.TempTree(t, map[string]string{"a.txt": "hello", "c.txt": "new"})

	var de *Error
	require.ErrorAs(t, Verify(left, right), &de)
	assert.Equal(t, []string{"c.txt"}, de.Added)
}

func TestVerify_RemovedFile(t *testing.T) {
	left := testutil.TempTree(t, map[string]string{"a.txt": "hello", "gone.txt": "x"})
	right := testutil.TempTree(t, map[string]string{"a.txt": "hello"})

	var de *Error
	require.ErrorAs(t, Verify(left, right), &de)
	assert.Equal(t, []string{"gone.txt"}, de.Removed)
}

func TestVerify_AddedEmptyDir(t *testing.T) {
	left := testutil.TempTree(t, map[string]string{"a.txt": "hello"})
	right := testutil.TempTree(t, map[string]string{"a.txt": "hello", "b/": ""})

	var de *Error
	require.ErrorAs(t, Verify(left, right), &de)
	assert.Equal(t, []string{"b"}, de.Added)
}

// Two entries differing only in path casing are the same entry for
// comparison purposes.
func TestVerify_CaseInsensitivePathIdentity(t *testing.T) {
	left := testutil.TempTree(t, map[string]string{"Sub/File.TXT": "hello"})
	right := testutil.TempTree(t, map[string]string{"sub/file.txt": "hello"})

	assert.NoError(t, Verify(left, right))
}

func TestVerify_FileReplacedByDir(t *testing.T) {
	left := testutil.TempTree(t, map[string]string{"x": "content"})
	right := testutil.TempTree(t, map[string]string{"x/": ""})

	var de *Error
	require.ErrorAs(t, Verify(left, right), &de)
	assert.Equal(t, []string{"x"}, de.Changed)
}

func TestVerify_MissingTreeIsNotDrift(t *testing.T) {
	err := Verify(t.TempDir(), "/nonexistent/drydrift/tree")
	require.Error(t, err)

	var de *Error
	assert.False(t, errors.As(err, &de))
	assert.False(t, IsDrift(err))
}

func TestError_Rendering(t *testing.T) {
	de := &Error{
		Added:   []string{"c.txt"},
		Removed: []string{"gone.txt"},
		Changed: []string{"a.txt"},
	}

	msg := de.Error()
	assert.Contains(t, msg, "3 path(s)")
	assert.Contains(t, msg, "added:   c.txt")
	assert.Contains(t, msg, "removed: gone.txt")
	assert.Contains(t, msg, "changed: a.txt")
}

func TestError_Paths(t *testing.T) {
	de := &Error{Added: []string{"c.txt"}, Removed: []string{"b.txt"}, Changed: []string{"a.txt"}}
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, de.Paths())
}
