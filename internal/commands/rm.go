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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string          { return "rm" }
func (c *RmCmd) Aliases() []string     { return []string{"delete"} }
func (c *RmCmd) Synopsis() string      { return "Delete a task" }
func (c *RmCmd) Usage() string         { return "realtodo rm <id>" }
func (c *RmCmd) Requires() Requirement { return RequiresAuth }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := ctrl.Delete(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
