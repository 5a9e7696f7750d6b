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

// Version is the application version. Set at build time with
// -ldflags "-X realtodo/internal/commands.Version=...".
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string          { return "version" }
func (c *VersionCmd) Aliases() []string     { return nil }
func (c *VersionCmd) Synopsis() string      { return "Print version" }
func (c *VersionCmd) Usage() string         { return "realtodo version" }
func (c *VersionCmd) Requires() Requirement { return RequiresNothing }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "realtodo %s\n", Version)
	return exitcode.Success
}
