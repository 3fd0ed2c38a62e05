// Package main generates markdown CLI reference pages from the
// avito-watch command tree.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/temirkanov/avito-watch/cmd/avito-watch/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	if err := run(*output); err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}
}

func run(output string) error {
	if err := os.MkdirAll(output, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTree(root, output); err != nil {
		return fmt.Errorf("generating docs: %w", err)
	}

	fmt.Printf("CLI docs generated in %s/\n", output)
	return nil
}
