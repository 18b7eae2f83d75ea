package fstree

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// UnsupportedEntryError reports a filesystem entry that is neither a regular
// file nor a directory (symlink, socket, device, named pipe).
//
// The comparison contract only covers files and directories; anything else
// is surfaced as an error instead of being silently dropped from the
// enumeration.
type UnsupportedEntryError struct {
	Rel  string      // root-relative path of the offending entry
	Mode fs.FileMode // raw mode bits for diagnostics
}

// Error implements the error interface.
func (e *UnsupportedEntryError) Error() string {
	return fmt.Sprintf("unsupported entry %q: mode %s is neither file nor directory", e.Rel, e.Mode)
}

// Walk enumerates every file and directory transitively contained under
// root, including empty directories. The root itself is not reported.
//
// The traversal is read-only and the order of entries is stable for a given
// tree but otherwise unspecified; callers that need ordering must sort.
// Entries that are neither regular files nor directories cause the walk to
// fail with UnsupportedEntryError.
func Walk(root string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := Rel(root, path)
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			entries = append(entries, Entry{Rel: rel, Kind: KindDir})
		case d.Type().IsRegular():
			entries = append(entries, Entry{Rel: rel, Kind: KindFile})
		default:
			return &UnsupportedEntryError{Rel: rel, Mode: d.Type()}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate %q: %w", root, err)
	}

	return entries, nil
}
