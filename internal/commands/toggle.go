package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"realtodo/internal/app"
	"realtodo/internal/config"
	"realtodo/internal/exitcode"
	"realtodo/internal/output"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command. It prints the task as reloaded
// from the server.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string          { return "toggle" }
func (c *ToggleCmd) Aliases() []string     { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string      { return "Flip a task between open and done" }
func (c *ToggleCmd) Usage() string         { return "realtodo toggle <id>" }
func (c *ToggleCmd) Requires() Requirement { return RequiresAuth }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := ctrl.Toggle(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if cfg.Quiet {
		return exitcode.Success
	}
	if task, ok := findTask(ctrl.Snapshot().Tasks, id); ok {
		output.FormatTask(out, task)
	} else {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
