package main

import (
	"os"

	"github.com/robalobadob/qalat/cmd/qalat/commands"
)

// Version information - set during build
var version = "dev"

func main() {
	commands.SetVersion(version)

	// Errors are printed by the commands in colour
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
