package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"realtodo/internal/app"
	"realtodo/internal/config"
	"realtodo/internal/exitcode"
	"realtodo/internal/output"
	"realtodo/internal/session"
)

func init() {
	Register(&WhoamiCmd{now: time.Now})
}

// WhoamiCmd prints what the stored credential says about its holder.
// Nothing is sent to the server and nothing is verified.
type WhoamiCmd struct {
	now func() time.Time
}

func (c *WhoamiCmd) Name() string          { return "whoami" }
func (c *WhoamiCmd) Aliases() []string     { return nil }
func (c *WhoamiCmd) Synopsis() string      { return "Show the logged-in account" }
func (c *WhoamiCmd) Usage() string         { return "realtodo whoami" }
func (c *WhoamiCmd) Requires() Requirement { return RequiresController }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	claims, err := ctrl.Claims()
	switch {
	case errors.Is(err, app.ErrNotAuthenticated):
		fmt.Fprintln(errOut, "error: not logged in (run: realtodo login)")
		return exitcode.AuthError
	case errors.Is(err, session.ErrOpaqueToken):
		fmt.Fprintln(out, "logged in (credential carries no readable claims)")
		return exitcode.Success
	case err != nil:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	output.FormatClaims(out, claims, now())
	return exitcode.Success
}
