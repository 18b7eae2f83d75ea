package fstree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestTree_CanonicalKeys(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Sub", "File.TXT"), []byte("hello"), 0o644))

	m, err := DigestTree(root)
	require.NoError(t, err)

	require.Len(t, m, 2)
	assert.Equal(t, DirDigest, m["sub"])
	assert.Equal(t, helloDigest, m["sub/file.txt"])
}

func TestDigestTree_EmptyDirVsZeroByteFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b"), nil, 0o644))

	m, err := DigestTree(root)
	require.NoError(t, err)

	assert.Equal(t, DirDigest, m["a"])
	assert.NotEqual(t, DirDigest, m["b"])
}

func TestDigestTree_CaseCollision(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "A.txt"), []byte("two"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := Walk(root)
	require.NoError(t, err)
	if len(entries) < 2 {
		t.Skip("filesystem is case-insensitive; collision cannot be constructed")
	}

	_, err = DigestTree(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision")
}

func TestDigestTree_EmptyTree(t *testing.T) {
	m, err := DigestTree(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, m)
}
