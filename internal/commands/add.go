package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"tasktrack/internal/app"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/output"
	"tasktrack/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	priority    string
	status      string
	due         string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "tasktrack add [common flags] [--description <text>] [--priority <p>] [--status <s>] [--due YYYY-MM-DD] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	// Join args to form title; the workflow rejects a blank one
	title := strings.Join(args, " ")
	in := service.TaskInput{Title: &title}

	if c.description != "" {
		in.Description = &c.description
	}
	if c.priority != "" {
		p, err := service.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		in.Priority = &p
	}
	if c.status != "" {
		s, err := service.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		in.Status = &s
	}
	if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		in.DueDate = &due
	}

	created, err := a.TaskFlow.CreateTask(ctx, in)
	if err != nil {
		return exitcode.For(err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "id: %s\n", created.ID)
	}
	return exitcode.Success
}

// parseDue parses a YYYY-MM-DD due date as UTC midnight.
func parseDue(s string) (time.Time, error) {
	due, err := time.Parse(output.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date: %s (want YYYY-MM-DD)", s)
	}
	return due, nil
}
