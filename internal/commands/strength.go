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
	"tasktrack/internal/validate"
)

func init() {
	Register(&StrengthCmd{})
}

// StrengthCmd implements the strength command, the password meter shown on
// the registration and reset views.
type StrengthCmd struct{}

func (c *StrengthCmd) Name() string      { return "strength" }
func (c *StrengthCmd) Aliases() []string { return nil }
func (c *StrengthCmd) Synopsis() string  { return "Rate a password against the password rules" }
func (c *StrengthCmd) Usage() string     { return "tasktrack strength [common flags] [<password>]" }
func (c *StrengthCmd) NeedsAuth() bool   { return false }

func (c *StrengthCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StrengthCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	password, err := secretOrAsk(ctx, a, strings.Join(args, " "), "Password: ")
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	output.FormatStrength(out, a.Translator, validate.PasswordStrength(password))
	if !cfg.Quiet {
		output.FormatChecklist(out, a.Translator, validate.Check(password))
	}
	return exitcode.Success
}
