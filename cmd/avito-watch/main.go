package main

import (
	"os"

	"github.com/temirkanov/avito-watch/cmd/avito-watch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
