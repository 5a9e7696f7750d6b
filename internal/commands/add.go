package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"realtodo/internal/app"
	"realtodo/internal/config"
	"realtodo/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string          { return "add" }
func (c *AddCmd) Aliases() []string     { return []string{"create"} }
func (c *AddCmd) Synopsis() string      { return "Create a task" }
func (c *AddCmd) Usage() string         { return "realtodo add <title...>" }
func (c *AddCmd) Requires() Requirement { return RequiresAuth }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	ctrl.SetNewTitle(strings.Join(args, " "))
	if err := ctrl.AddTask(ctx); err != nil {
		if errors.Is(err, app.ErrBlankTitle) {
			fmt.Fprintln(errOut, "error: title required")
			return exitcode.UserError
		}
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
