package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"realtodo/internal/app"
	"realtodo/internal/config"
	"realtodo/internal/exitcode"
	"realtodo/internal/ui"
)

func init() {
	Register(&UICmd{run: ui.Run})
}

// UICmd starts the interactive view.
type UICmd struct {
	run func(context.Context, *app.Controller, *config.Config) error
}

func (c *UICmd) Name() string          { return "ui" }
func (c *UICmd) Aliases() []string     { return []string{"tui"} }
func (c *UICmd) Synopsis() string      { return "Open the interactive view" }
func (c *UICmd) Usage() string         { return "realtodo ui" }
func (c *UICmd) Requires() Requirement { return RequiresController }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	if err := c.run(ctx, ctrl, cfg); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
