package fstree

import "fmt"

// DigestMap maps canonical relative paths to content digests for one tree.
// Directory entries map to DirDigest.
type DigestMap map[string]Digest

// DigestTree enumerates root and hashes every entry into a DigestMap.
//
// Keys are canonical (slash-separated, NFC, lower-case), so two entries that
// differ only in path casing collapse to one key; that collision is reported
// as an error because the tree itself is then ambiguous under the comparison
// contract.
func DigestTree(root string) (DigestMap, error) {
	entries, err := Walk(root)
	if err != nil {
		return nil, err
	}

	m := make(DigestMap, len(entries))
	for _, entry := range entries {
		key := entry.Key()
		if _, dup := m[key]; dup {
			return nil, fmt.Errorf("digest %q: canonical path collision on %q", root, key)
		}
		d, err := HashEntry(root, entry)
		if err != nil {
			return nil, fmt.Errorf("digest %q: %w", root, err)
		}
		m[key] = d
	}
	return m, nil
}
