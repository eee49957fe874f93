// Package main is the entry point for the scribe CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/scribe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
