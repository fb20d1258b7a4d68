// Package main is the entry point for the jdparse CLI.
package main

import (
	"os"

	"github.com/jdparse/jdparse/cmd/jdparse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
