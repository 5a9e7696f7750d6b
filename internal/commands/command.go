// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"realtodo/internal/app"
	"realtodo/internal/config"
)

// Requirement says what a command needs before it can run.
type Requirement int

const (
	// RequiresNothing commands get a nil controller (help, version).
	RequiresNothing Requirement = iota

	// RequiresController commands get a controller whose stored session
	// has not been checked yet (login, logout, ui, ...).
	RequiresController

	// RequiresAuth commands run only after the stored session has been
	// restored and its task list loaded.
	RequiresAuth
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Requires reports what the dispatcher must set up first.
	Requires() Requirement

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// ctrl is nil if Requires() returns RequiresNothing.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int
}
