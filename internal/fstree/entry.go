package fstree

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind classifies a tree entry.
type Kind int

const (
	// KindFile is a regular file.
	KindFile Kind = iota

	// KindDir is a directory (possibly empty).
	KindDir
)

// String returns the lower-case kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is a single file or directory found under an enumeration root.
//
// Rel is the root-relative path with platform separators normalized to
// forward slashes. It preserves the original casing; use Canonical (or
// Entry.Key) when building comparison keys.
type Entry struct {
	Rel  string
	Kind Kind
}

// Key returns the canonical comparison key for the entry.
func (e Entry) Key() string {
	return Canonical(e.Rel)
}

// Canonical converts a slash-separated relative path into its canonical
// comparison form: Unicode NFC normalization followed by lower-casing.
//
// NFC first, then lower-case: case mapping on a decomposed string can
// produce a different result than on the composed form.
func Canonical(rel string) string {
	return strings.ToLower(norm.NFC.String(rel))
}

// Rel resolves path against root and returns the slash-separated relative
// identifier. Returns an error when path does not live under root.
func Rel(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("resolve %q against root %q: %w", path, root, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes root %q", path, root)
	}
	return filepath.ToSlash(rel), nil
}

// Abs maps a slash-separated relative identifier back to an absolute path
// under root.
func Abs(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
