// Package main is the entry point for the verigate CLI binary.
package main

import (
	"os"

	"github.com/verigate/verigate/cmd/verigate/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
