// Package drift compares two directory trees by content digest and reports
// every path that was added, removed, or changed between them.
package drift

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/drydrift/drydrift/internal/fstree"
)

// Error reports a structural or content difference between two trees.
//
// Paths are canonical relative identifiers (slash-separated, lower-case).
// Added paths exist only in the right tree, Removed paths only in the left,
// Changed paths exist in both with differing digests. Each slice is sorted.
type Error struct {
	Added   []string
	Removed []string
	Changed []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "tree drift detected (%d path(s))", len(e.Added)+len(e.Removed)+len(e.Changed))
	for _, p := range e.Added {
		fmt.Fprintf(&buf, "\n  added:   %s", p)
	}
	for _, p := range e.Removed {
		fmt.Fprintf(&buf, "\n  removed: %s", p)
	}
	for _, p := range e.Changed {
		fmt.Fprintf(&buf, "\n  changed: %s", p)
	}

	return buf.String()
}

// Paths returns every drifted path in one sorted slice.
func (e *Error) Paths() []string {
	paths := make([]string, 0, len(e.Added)+len(e.Removed)+len(e.Changed))
	paths = append(paths, e.Added...)
	paths = append(paths, e.Removed...)
	paths = append(paths, e.Changed...)
	sort.Strings(paths)
	return paths
}

// IsDrift reports whether err is (or wraps) a drift Error.
func IsDrift(err error) bool {
	var de *Error
	return errors.As(err, &de)
}

// Verify asserts that the trees under leftRoot and rightRoot are
// structurally and byte-for-byte identical.
//
// Both trees are enumerated and digested independently; comparison runs on
// canonical path keys, so it is insensitive to path casing and platform
// separators. On any discrepancy Verify returns *Error naming the offending
// paths. Verification is read-only: neither tree is mutated.
func Verify(leftRoot, rightRoot string) error {
	left, err := fstree.DigestTree(leftRoot)
	if err != nil {
		return fmt.Errorf("verify: left tree: %w", err)
	}
	right, err := fstree.DigestTree(rightRoot)
	if err != nil {
		return fmt.Errorf("verify: right tree: %w", err)
	}

	var drift Error
	for key, leftDigest := range left {
		rightDigest, ok := right[key]
		switch {
		case !ok:
			drift.Removed = append(drift.Removed, key)
		case leftDigest != rightDigest:
			drift.Changed = append(drift.Changed, key)
		}
	}
	for key := range right {
		if _, ok := left[key]; !ok {
			drift.Added = append(drift.Added, key)
		}
	}

	if len(drift.Added) == 0 && len(drift.Removed) == 0 && len(drift.Changed) == 0 {
		return nil
	}

	sort.Strings(drift.Added)
	sort.Strings(drift.Removed)
	sort.Strings(drift.Changed)
	return &drift
}
