package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"realtodo/internal/app"
	"realtodo/internal/commands"
	"realtodo/internal/config"
	"realtodo/internal/exitcode"
)

// ControllerFactory creates a Controller from config.
// Used to inject the backend and credential storage during dispatch.
type ControllerFactory func(ctx context.Context, cfg *config.Config) (*app.Controller, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ControllerFactory
}

// NewDispatcher creates a new dispatcher with the given registry and controller factory.
func NewDispatcher(registry *commands.Registry, factory ControllerFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir, server string
	var quiet, debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&server, "server", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(errOut, err)
	}

	// A leading dash after the flags was not parsed as one
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	if server != "" {
		cfg.Server = server
	}
	cfg.Quiet = quiet
	cfg.Debug = cfg.Debug || debug
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	logger := log.WithField("command", cmd.Name())
	logger.WithFields(log.Fields{"server": cfg.Server, "store": cfg.Store}).Debug("dispatch")

	var ctrl *app.Controller
	if cmd.Requires() != commands.RequiresNothing {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.BackendError
		}
		ctrl, err = d.factory(ctx, cfg)
		if err != nil {
			logger.WithError(err).Debug("controller setup failed")
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.BackendError
		}
	}

	if cmd.Requires() == commands.RequiresAuth {
		if code := restoreSession(ctx, ctrl, errOut); code != exitcode.Success {
			return code
		}
	}

	return cmd.Run(ctx, cfg, ctrl, positionalArgs, out, errOut)
}

// restoreSession runs the startup reload for commands that need a session.
// A failed reload logs the client out.
func restoreSession(ctx context.Context, ctrl *app.Controller, errOut io.Writer) int {
	if !ctrl.Authenticated() {
		fmt.Fprintln(errOut, "error: not logged in (run: realtodo login)")
		return exitcode.AuthError
	}
	err := ctrl.Start(ctx)
	if err == nil {
		return exitcode.Success
	}

	fmt.Fprintf(errOut, "error: %v (logged out, run: realtodo login)\n", err)
	if code := exitcode.ForError(err); code == exitcode.BackendError {
		return code
	}
	return exitcode.AuthError
}

func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
	default:
		fmt.Fprintf(errOut, "error: %s\n", errStr)
	}
	return exitcode.UserError
}
