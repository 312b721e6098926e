// Command columnix is a thin inspection harness over package file, printing
// a file's schema and row-group layout. The engine itself has no required
// CLI surface; this exists for manual poking during development.
package main

import (
	"fmt"
	"os"

	"github.com/solidcoredata/columnix/file"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: columnix <file>")
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r, err := file.Open(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("row groups: %d, rows: %d\n", r.RowGroupCount(), r.RowCount())
	for i, s := range r.Schema() {
		fmt.Printf("  column %d: %-16s type=%-4s compression=%s\n", i, s.Name, s.Type, s.Compression)
	}
}
