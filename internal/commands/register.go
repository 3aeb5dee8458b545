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
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	name     string
	email    string
	password string
	confirm  string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "tasktrack register [common flags] [--name <name>] [--email <email>] [--password <password>] [--confirm <password>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	form := workflow.RegisterForm{}
	fields := []struct {
		dst    *string
		value  string
		prompt string
		secret bool
	}{
		{&form.Name, c.name, "Name: ", false},
		{&form.Email, c.email, "Email: ", false},
		{&form.Password, c.password, "Password: ", true},
		{&form.ConfirmPassword, c.confirm, "Confirm password: ", true},
	}
	for _, f := range fields {
		ask := valueOrAsk
		if f.secret {
			ask = secretOrAsk
		}
		v, err := ask(ctx, a, f.value, f.prompt)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		*f.dst = v
	}

	password := form.Password
	if err := a.Auth.Register(ctx, &form); err != nil {
		output.FormatFieldErrors(errOut, form.Errors, form.Error)
		if _, bad := form.Errors["password"]; bad {
			output.FormatChecklist(errOut, a.Translator, validate.Check(password))
		}
		return exitcode.For(err)
	}

	showRoute(a, out)
	return exitcode.Success
}
