// Package main provides the hull CLI.
package main

import (
	"os"

	"github.com/hull-opt/hull/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
