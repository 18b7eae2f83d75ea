// Package fstree enumerates and fingerprints directory trees.
//
// A tree is addressed by canonical relative paths: slash-separated,
// NFC-normalized, lower-cased keys relative to the enumeration root. The
// canonical form exists because the trees under comparison may live on
// case-insensitive filesystems - two paths that differ only in casing must
// collapse to the same key even when the filesystem hosting the comparison
// happens to be case-sensitive.
//
// Enumeration covers every file and every directory, including empty
// directories. Entries that are neither regular files nor directories
// (symlinks, sockets, devices) are rejected with UnsupportedEntryError
// rather than silently skipped; the comparison contract cannot make a
// meaningful statement about entries it does not fingerprint.
//
// Files are fingerprinted with a streaming SHA-256 digest so arbitrarily
// large files never need to fit in memory. Directories carry a fixed
// sentinel digest assigned by kind - the digest value alone cannot
// distinguish an empty directory from a zero-byte file, so kind is decided
// at hashing time, never inferred from content afterward.
package fstree
