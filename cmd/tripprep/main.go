// Package main provides the tripprep CLI entry point.
package main

import (
	"os"

	"github.com/LeoSousa155/DataScience/internal/cli/commands"
)

func main() {
	os.Exit(commands.Execute())
}
