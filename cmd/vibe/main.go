// Package main provides the entry point for the vibe CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/vibe-cli/vibe/cmd/vibe/commands"
	"github.com/vibe-cli/vibe/internal/executor"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	// A tool that ran and failed already wrote its own output; mirror
	// its exit code without adding noise.
	var exit *executor.ExitError
	if errors.As(err, &exit) {
		os.Exit(exit.Code)
	}
	if errors.Is(err, commands.ErrReported) {
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "vibe:", err)
	os.Exit(1)
}
