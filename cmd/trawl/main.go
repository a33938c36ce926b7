// Package main provides the entry point for the trawl CLI.
package main

import (
	"os"

	"github.com/trawl-dev/trawl/cmd/trawl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
