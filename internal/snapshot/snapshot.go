// Package snapshot duplicates a directory tree into an isolated location so
// it can later be compared against the live tree.
//
// Snapshots are plain directory trees, not an archive format. Every capture
// allocates a fresh, uniquely named location (UUID suffix) that is never
// reused across captures; release deletes it recursively and is idempotent.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/drydrift/drydrift/internal/fstree"
)

// Store allocates and owns snapshot locations.
type Store struct {
	base string
}

// NewStore creates a Store that allocates snapshot locations under base.
// An empty base falls back to the system temporary directory.
func NewStore(base string) *Store {
	if base == "" {
		base = os.TempDir()
	}
	return &Store{base: base}
}

// Snapshot is one captured tree. It owns its location until Release.
type Snapshot struct {
	root string

	releaseOnce sync.Once
	releaseErr  error
}

// Root returns the absolute path of the captured tree.
func (s *Snapshot) Root() string {
	return s.root
}

// Release recursively deletes the snapshot location.
//
// Idempotent and nil-safe: releasing twice, or releasing a snapshot that was
// never captured, is a no-op. The first error, if any, is sticky.
func (s *Snapshot) Release() error {
	if s == nil {
		return nil
	}
	s.releaseOnce.Do(func() {
		if err := os.RemoveAll(s.root); err != nil {
			s.releaseErr = fmt.Errorf("release snapshot %q: %w", s.root, err)
		}
	})
	return s.releaseErr
}

// Capture deep-copies the tree under root into a freshly allocated snapshot
// location and returns the owning Snapshot.
//
// Directories are recreated (empty directories included); files are
// byte-copied verbatim. Nothing is hashed at capture time. On any failure
// the partially built location is removed before returning.
func (st *Store) Capture(root string) (*Snapshot, error) {
	entries, err := fstree.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("capture %q: %w", root, err)
	}

	snapRoot := filepath.Join(st.base, "drydrift-snap-"+uuid.NewString())
	if err := os.MkdirAll(snapRoot, 0o755); err != nil {
		return nil, fmt.Errorf("capture %q: allocate snapshot location: %w", root, err)
	}

	for _, entry := range entries {
		src := fstree.Abs(root, entry.Rel)
		dst := fstree.Abs(snapRoot, entry.Rel)

		var copyErr error
		switch entry.Kind {
		case fstree.KindDir:
			copyErr = os.MkdirAll(dst, 0o755)
		case fstree.KindFile:
			copyErr = copyFile(src, dst)
		}
		if copyErr != nil {
			_ = os.RemoveAll(snapRoot)
			return nil, fmt.Errorf("capture %q: copy %q: %w", root, entry.Rel, copyErr)
		}
	}

	return &Snapshot{root: snapRoot}, nil
}

// copyFile byte-copies src to dst, creating parent directories as needed.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
