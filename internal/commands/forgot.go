package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/app"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/workflow"
)

func init() {
	Register(&ForgotPasswordCmd{})
}

// ForgotPasswordCmd implements the forgot-password command.
type ForgotPasswordCmd struct {
	email string
}

func (c *ForgotPasswordCmd) Name() string      { return "forgot-password" }
func (c *ForgotPasswordCmd) Aliases() []string { return []string{"forgot"} }
func (c *ForgotPasswordCmd) Synopsis() string  { return "Request a password reset link" }
func (c *ForgotPasswordCmd) Usage() string {
	return "tasktrack forgot-password [common flags] [--email <email>]"
}
func (c *ForgotPasswordCmd) NeedsAuth() bool { return false }

func (c *ForgotPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
}

func (c *ForgotPasswordCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	email := c.email
	if email == "" && len(args) > 0 {
		email = strings.Join(args, " ")
	}

	var err error
	form := workflow.ForgotPasswordForm{}
	if form.Email, err = valueOrAsk(ctx, a, email, "Email: "); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := a.Auth.ForgotPassword(ctx, &form); err != nil {
		output.FormatFieldErrors(errOut, form.Errors, form.Error)
		return exitcode.For(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, form.Success)
	}
	return exitcode.Success
}
