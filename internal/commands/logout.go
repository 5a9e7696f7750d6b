package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"realtodo/internal/app"
	"realtodo/internal/config"
	"realtodo/internal/exitcode"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string          { return "logout" }
func (c *LogoutCmd) Aliases() []string     { return nil }
func (c *LogoutCmd) Synopsis() string      { return "Remove the stored credential" }
func (c *LogoutCmd) Usage() string         { return "realtodo logout" }
func (c *LogoutCmd) Requires() Requirement { return RequiresController }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	if !ctrl.Authenticated() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	ctrl.Logout()
	if !cfg.Quiet {
		fmt.Fprintln(out, ctrl.Snapshot().Status)
	}
	return exitcode.Success
}
