// Package main is the entry point for the alfred-time workflow.
package main

import (
	"os"

	"github.com/c2nes/alfred-time/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
