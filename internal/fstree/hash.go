package fstree

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// Digest is a hex-encoded SHA-256 fingerprint of a file's byte contents.
type Digest string

// DirDigest is the sentinel digest assigned to directory entries. It is
// assigned by kind at hashing time; no directory bytes are ever read.
const DirDigest Digest = ""

// FileUnavailableError reports a file that vanished or became unreadable
// between enumeration and hashing, typically a race with a concurrent
// filesystem mutation. The caller decides whether this is fatal.
type FileUnavailableError struct {
	Rel string // root-relative path of the file
	Err error  // underlying filesystem error
}

// Error implements the error interface.
func (e *FileUnavailableError) Error() string {
	return fmt.Sprintf("file unavailable: %q: %v", e.Rel, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *FileUnavailableError) Unwrap() error {
	return e.Err
}

// IsFileUnavailable reports whether err is (or wraps) a FileUnavailableError.
func IsFileUnavailable(err error) bool {
	var fe *FileUnavailableError
	return errors.As(err, &fe)
}

// HashEntry returns the digest for a tree entry under root.
//
// Directory entries get DirDigest without touching the filesystem. File
// entries are streamed through SHA-256 so file size never matters. A file
// that cannot be opened or read yields FileUnavailableError.
func HashEntry(root string, entry Entry) (Digest, error) {
	if entry.Kind == KindDir {
		return DirDigest, nil
	}
	return hashFile(root, entry.Rel)
}

func hashFile(root, rel string) (Digest, error) {
	f, err := os.Open(Abs(root, rel))
	if err != nil {
		return "", &FileUnavailableError{Rel: rel, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &FileUnavailableError{Rel: rel, Err: err}
	}
	return Digest(hex.EncodeToString(h.Sum(nil))), nil
}
