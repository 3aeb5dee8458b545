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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "tasktrack rm [common flags] [--yes] <ref>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	task, code := resolveTask(ctx, a, args, errOut)
	if code != exitcode.Success {
		return code
	}

	a.Console.AssumeYes = c.yes
	if !c.yes {
		fmt.Fprintf(errOut, "%s\n", task.Title)
	}
	deleted, err := a.TaskFlow.DeleteTask(ctx, task.ID)
	if err != nil {
		return exitcode.For(err)
	}
	if !deleted && !cfg.Quiet {
		fmt.Fprintln(out, "cancelled")
	}
	return exitcode.Success
}
