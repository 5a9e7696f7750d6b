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
	Register(&ListCmd{})
}

// ListCmd implements the list command, also run by `realtodo` with no args.
// The dispatcher has already loaded the list by the time Run is called.
type ListCmd struct{}

func (c *ListCmd) Name() string          { return "list" }
func (c *ListCmd) Aliases() []string     { return []string{"ls"} }
func (c *ListCmd) Synopsis() string      { return "List tasks, newest first" }
func (c *ListCmd) Usage() string         { return "realtodo list" }
func (c *ListCmd) Requires() Requirement { return RequiresAuth }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks := ctrl.Snapshot().Tasks
	if len(tasks) == 0 && cfg.Quiet {
		return exitcode.Success
	}
	output.FormatTasks(out, tasks)
	return exitcode.Success
}
