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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the given flags are sent.
type EditCmd struct {
	title       optString
	description optString
	status      optString
	priority    optString
	due         optString
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "tasktrack edit [common flags] [--title <t>] [--description <d>] [--status <s>] [--priority <p>] [--due YYYY-MM-DD] <ref>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
	fs.Var(&c.status, "status", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.priority, "p", "")
	fs.Var(&c.due, "due", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	in := service.TaskInput{
		Title:       c.title.ptr(),
		Description: c.description.ptr(),
	}
	if c.status.set {
		s, err := service.ParseStatus(c.status.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		in.Status = &s
	}
	if c.priority.set {
		p, err := service.ParsePriority(c.priority.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		in.Priority = &p
	}
	if c.due.set {
		due, err := parseDue(c.due.value)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		in.DueDate = &due
	}
	if in == (service.TaskInput{}) {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	task, code := resolveTask(ctx, a, args, errOut)
	if code != exitcode.Success {
		return code
	}

	updated, err := a.TaskFlow.UpdateTask(ctx, task.ID, in)
	if err != nil {
		return exitcode.For(err)
	}

	if !cfg.Quiet {
		output.FormatTaskDetail(out, updated)
	}
	return exitcode.Success
}
