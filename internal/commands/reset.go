package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/app"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/validate"
	"tasktrack/internal/workflow"
)

func init() {
	Register(&ResetPasswordCmd{})
}

// ResetPasswordCmd implements the reset-password command.
type ResetPasswordCmd struct {
	token    string
	link     string
	password string
	confirm  string
}

func (c *ResetPasswordCmd) Name() string      { return "reset-password" }
func (c *ResetPasswordCmd) Aliases() []string { return []string{"reset"} }
func (c *ResetPasswordCmd) Synopsis() string  { return "Set a new password with a reset token" }
func (c *ResetPasswordCmd) Usage() string {
	return "tasktrack reset-password [common flags] (--token <token> | --link <url>) [--password <password>] [--confirm <password>]"
}
func (c *ResetPasswordCmd) NeedsAuth() bool { return false }

func (c *ResetPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
	fs.StringVar(&c.link, "link", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
}

func (c *ResetPasswordCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if c.token != "" && c.link != "" {
		fmt.Fprintln(errOut, "error: cannot use both --token and --link")
		return exitcode.UserError
	}

	form := workflow.ResetPasswordForm{Token: c.token}
	if c.link != "" {
		form.Token = workflow.TokenFromLink(c.link)
	}

	// Without a token there is nothing to ask for; the workflow rejects it.
	if form.Token != "" {
		var err error
		if form.Password, err = secretOrAsk(ctx, a, c.password, "New password: "); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		if form.ConfirmPassword, err = secretOrAsk(ctx, a, c.confirm, "Confirm password: "); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	password := form.Password
	if err := a.Auth.ResetPassword(ctx, &form); err != nil {
		output.FormatFieldErrors(errOut, form.Errors, form.Error)
		if _, bad := form.Errors["password"]; bad {
			output.FormatChecklist(errOut, a.Translator, validate.Check(password))
		}
		return exitcode.For(err)
	}

	showRoute(a, out)
	return exitcode.Success
}
