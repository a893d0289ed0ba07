// Package main is the entry point for the tantivy-dir CLI.
//
// tantivy-dir inspects and edits an index directory through the same
// storage layer the index uses, so every command goes through lazy root
// creation, write-once segment files and the metadata watcher.
//
// Usage:
//
//	tantivy-dir [flags] <command> [args]
//
// Commands:
//
//	put      - Create a new file (fails if it exists)
//	cat      - Read a file, or a byte range of it
//	read     - Read a whole file in one call
//	write    - Replace the whole content of a file
//	stat     - Show file length and existence
//	exists   - Print whether a file exists
//	rm       - Delete a file
//	watch    - Print a line each time meta.json changes
//	config   - Show or edit the configuration file
//	version  - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/theduke/tantivy/cmd/tantivy-dir/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
