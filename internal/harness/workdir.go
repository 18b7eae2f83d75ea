package harness

import (
	"fmt"
	"os"
	"sync"
)

// dirMutation is the single mutual-exclusion group for every execution
// window that mutates the process working directory. Chdir is process-wide
// state; two overlapping windows would observe each other's directory.
var dirMutation sync.Mutex

// pushd records the current working directory, switches to dir, and returns
// a restore function. The restore function must be called exactly once, on
// every exit path; it switches back to the recorded directory.
func pushd(dir string) (restore func() error, err error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("record working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("enter %q: %w", dir, err)
	}
	return func() error {
		if err := os.Chdir(prev); err != nil {
			return fmt.Errorf("restore working directory %q: %w", prev, err)
		}
		return nil
	}, nil
}
