package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"realtodo/internal/app"
	"realtodo/internal/config"
	"realtodo/internal/exitcode"
)

// PasswordEnv supplies the password when --password is not given.
const PasswordEnv = "REALTODO_PASSWORD"

func init() {
	Register(&LoginCmd{mode: app.ModeLogin})
	Register(&LoginCmd{mode: app.ModeRegister})
}

// LoginCmd implements login and register. Both submit the same form and
// differ only in the endpoint.
type LoginCmd struct {
	mode     app.AuthMode
	email    string
	password string
}

// NewLoginCmd returns the command for mode.
func NewLoginCmd(mode app.AuthMode) *LoginCmd {
	return &LoginCmd{mode: mode}
}

func (c *LoginCmd) Name() string      { return c.mode.String() }
func (c *LoginCmd) Aliases() []string { return nil }

func (c *LoginCmd) Synopsis() string {
	if c.mode == app.ModeRegister {
		return "Create an account and log in"
	}
	return "Log in and store the credential"
}

func (c *LoginCmd) Usage() string {
	return "realtodo " + c.mode.String() + " --email <email> [--password <password>]"
}

func (c *LoginCmd) Requires() Requirement { return RequiresController }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, ctrl *app.Controller, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	password := c.password
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	if c.email == "" {
		fmt.Fprintln(errOut, "error: email required (use --email)")
		return exitcode.UserError
	}
	if password == "" {
		fmt.Fprintf(errOut, "error: password required (use --password or %s)\n", PasswordEnv)
		return exitcode.UserError
	}

	ctrl.SetMode(c.mode)
	ctrl.SetEmail(c.email)
	ctrl.SetPassword(password)
	if err := ctrl.SubmitAuth(ctx); err != nil {
		if ctrl.Authenticated() {
			// The credential was stored; only the first load failed.
			fmt.Fprintf(errOut, "warning: logged in but could not load tasks: %v\n", err)
			return exitcode.BackendError
		}
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, ctrl.Snapshot().Status)
	}
	return exitcode.Success
}
