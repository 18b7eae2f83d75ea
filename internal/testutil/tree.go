// Package testutil provides deterministic helpers shared by tests and by
// the harness: fixture tree construction and clock control for reproducible
// ledger timestamps.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTree materializes a fixture tree under root.
//
// Keys are slash-separated relative paths. A key ending in "/" creates an
// empty directory; any other key creates a file with the mapped content,
// creating parent directories as needed.
//
// Example:
//
//	testutil.WriteTree(t, root, map[string]string{
//	    "a.txt":      "hello",
//	    "b/":         "",
//	    "sub/c.conf": "key = value",
//	})
func WriteTree(t *testing.T, root string, entries map[string]string) {
	t.Helper()

	for rel, content := range entries {
		path := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(rel, "/")))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir parents of %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// TempTree creates a temporary directory via t.TempDir and populates it
// with WriteTree. Cleanup is handled by t.TempDir mechanics.
func TempTree(t *testing.T, entries map[string]string) string {
	t.Helper()

	root := t.TempDir()
	WriteTree(t, root, entries)
	return root
}
