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
	"tasktrack/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command, the dashboard view.
// Handles both `tasktrack` (no args) and `tasktrack list`.
type ListCmd struct {
	status string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"dashboard", "ls"} }
func (c *ListCmd) Synopsis() string  { return "Show the task dashboard" }
func (c *ListCmd) Usage() string     { return "tasktrack list [common flags] [--status <status>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var filter service.Status
	if c.status != "" {
		s, err := service.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		filter = s
	}

	// the workflow reports load failures itself
	if err := a.TaskFlow.Load(ctx); err != nil {
		return exitcode.For(err)
	}

	if !cfg.Quiet {
		output.FormatStats(out, a.Tasks.Stats())
	}

	// Numbers follow the full dashboard order so they stay valid with a filter
	ordered := dashboardOrder(a.Tasks.Tasks())
	hasAnyTasks := false
	for _, status := range service.Statuses {
		if filter != "" && status != filter {
			continue
		}
		group := a.Tasks.ByStatus(status)
		if len(group) == 0 {
			continue
		}
		output.FormatStatusHeader(out, status, len(group))
		for i, task := range ordered {
			if task.Status == status {
				output.FormatTask(out, i+1, task)
			}
		}
		hasAnyTasks = true
	}

	if !hasAnyTasks && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
