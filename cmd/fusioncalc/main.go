// Package main provides the entry point for the fusioncalc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/personafuse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
