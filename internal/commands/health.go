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
	Register(&HealthCmd{})
}

// HealthCmd checks that the API answers.
type HealthCmd struct{}

func (c *HealthCmd) Name() string          { return "health" }
func (c *HealthCmd) Aliases() []string     { return []string{"ping"} }
func (c *HealthCmd) Synopsis() string      { return "Check that the server is reachable" }
func (c *HealthCmd) Usage() string         { return "realtodo health" }
func (c *HealthCmd) Requires() Requirement { return RequiresController }

func (c *HealthCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HealthCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	if err := ctrl.Ping(ctx); err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (%s)\n", cfg.Server)
	}
	return exitcode.Success
}
