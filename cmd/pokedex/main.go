// Command pokedex is an interactive terminal Pokédex.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshade/pokedex/internal/cli"
	"github.com/rshade/pokedex/internal/config"
	"github.com/rshade/pokedex/pkg/version"
)

// Process exit codes.
const (
	exitOK            = 0
	exitFailure       = 1
	exitInvalidConfig = 2
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SilenceErrors = true
	return root.Execute()
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrInvalidConfig):
		return exitInvalidConfig
	default:
		return exitFailure
	}
}
