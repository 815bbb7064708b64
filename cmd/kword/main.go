// Package main is the entry point for the kword CLI.
package main

import (
	"os"

	"github.com/f3rmion/kword/cmd/kword/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
