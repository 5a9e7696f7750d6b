package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"realtodo/internal/app"
	"realtodo/internal/config"
	"realtodo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. Usage lines come from the registry,
// so every registered command is listed.
type HelpCmd struct {
	// Registry defaults to DefaultRegistry.
	Registry *Registry
}

func (c *HelpCmd) Name() string          { return "help" }
func (c *HelpCmd) Aliases() []string     { return nil }
func (c *HelpCmd) Synopsis() string      { return "Print usage" }
func (c *HelpCmd) Usage() string         { return "realtodo help [command]" }
func (c *HelpCmd) Requires() Requirement { return RequiresNothing }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}

	if len(args) > 0 {
		cmd, ok := reg.Find(args[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
			return exitcode.UserError
		}
		fmt.Fprintf(out, "Usage:\n  %s\n\n%s\n", cmd.Usage(), cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(out, "Aliases: %s\n", strings.Join(aliases, ", "))
		}
		fmt.Fprint(out, commonFlagsText)
		return exitcode.Success
	}

	fmt.Fprintln(out, "Usage:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  realtodo\t%s\n", "List tasks (same as list)")
	for _, cmd := range reg.All() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), cmd.Synopsis())
	}
	tw.Flush()
	fmt.Fprint(out, commonFlagsText)
	return exitcode.Success
}

const commonFlagsText = `
Common flags:
  --config <dir>   Override config directory
  --server <url>   API base address (default from config.yaml or REALTODO_SERVER)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
