// Package main is the entry point for the webp CLI
package main

import (
	"errors"
	"os"

	"github.com/Kruithne/webp/cmd"
	"github.com/Kruithne/webp/internal/output"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			output.NewPrinter(false).FormatError(cliErr)
			os.Exit(cliErr.ExitCode)
		}
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(output.ExitError)
	}
}
