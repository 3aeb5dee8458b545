package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/app"
	"tasktrack/internal/apperr"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/validate"
	"tasktrack/internal/workflow"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in with email and password" }
func (c *LoginCmd) Usage() string {
	return "tasktrack login [common flags] [--email <email>] [--password <password>]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	// Already logged in with a token the backend still accepts
	if a.Session.Token() != "" {
		if err := a.Auth.Restore(ctx); err == nil && a.Session.Authenticated() {
			if !cfg.Quiet {
				fmt.Fprintf(out, "already logged in as %s\n", a.Session.User().Email)
			}
			return exitcode.Success
		}
	}

	var err error
	form := workflow.LoginForm{}
	if form.Email, err = valueOrAsk(ctx, a, c.email, "Email: "); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if form.Password, err = secretOrAsk(ctx, a, c.password, "Password: "); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	password := form.Password
	if err := a.Auth.Login(ctx, &form); err != nil {
		output.FormatFieldErrors(errOut, form.Errors, form.Error)
		if form.ShowPasswordHints {
			output.FormatChecklist(errOut, a.Translator, validate.Check(password))
		}
		return loginExitCode(err)
	}

	showRoute(a, out)
	return exitcode.Success
}

// loginExitCode maps login failures; rejected credentials are an auth error,
// not a user error.
func loginExitCode(err error) int {
	if apperr.KindOf(err) == apperr.KindNotFound {
		return exitcode.AuthError
	}
	return exitcode.For(err)
}
