// Command drydrift proves that a command's dry-run mode has no side
// effects by snapshotting a working tree, running the dry-run variant, and
// verifying the tree afterward.
package main

import (
	"fmt"
	"os"

	"github.com/drydrift/drydrift/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
