package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/app"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasktrack help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  tasktrack                  Show the task dashboard")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-26s %s\n", "tasktrack "+cmd.Name(), cmd.Synopsis())
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
Task references:
  <n>              Position on the dashboard (tasktrack list)
  <id>             Task id or a unique id prefix

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TASKTRACK_API_URL          Backend base URL (default http://localhost:3000)
  TASKTRACK_API_TIMEOUT      Per-request timeout (default 10s)
  TASKTRACK_STORAGE_DRIVER   file or sqlite (default file)
  TASKTRACK_LOCALE           en or pt-BR
`
