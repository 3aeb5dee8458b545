// Package ui adapts the workflow interfaces to a terminal.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"tasktrack/internal/workflow"
)

// ErrNoInput is returned when a prompt needs an answer and input is exhausted.
var ErrNoInput = errors.New("no input")

// Console writes notices to Out/ErrOut and reads answers from In.
type Console struct {
	Out    io.Writer
	ErrOut io.Writer
	// Quiet suppresses success notices and navigation hints.
	Quiet bool
	// AssumeYes answers every confirmation with yes.
	AssumeYes bool

	mu    sync.Mutex
	route workflow.Route

	// readMu serializes prompts; it is never held by Navigate or Route.
	readMu sync.Mutex
	in     *bufio.Reader
	// ttyFd is the descriptor of In when it is a terminal, -1 otherwise.
	ttyFd int
}

// NewConsole returns a console over the given streams.
func NewConsole(in io.Reader, out, errOut io.Writer) *Console {
	if in == nil {
		in = strings.NewReader("")
	}
	c := &Console{Out: out, ErrOut: errOut, in: bufio.NewReader(in), ttyFd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.ttyFd = int(f.Fd())
	}
	return c
}

// Success implements workflow.Notifier.
func (c *Console) Success(msg string) {
	if c.Quiet {
		return
	}
	fmt.Fprintln(c.Out, msg)
}

// Error implements workflow.Notifier.
func (c *Console) Error(msg string) {
	fmt.Fprintf(c.ErrOut, "error: %s\n", msg)
}

// Navigate implements workflow.Navigator. The route is recorded for the
// command to render next.
func (c *Console) Navigate(route workflow.Route) {
	c.mu.Lock()
	c.route = route
	c.mu.Unlock()
}

// Route returns the last navigation target, "" if none.
func (c *Console) Route() workflow.Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

// Confirm implements workflow.Confirmer with a [y/N] prompt.
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	if c.AssumeYes {
		return true, nil
	}
	answer, err := c.Ask(ctx, question+" [y/N] ")
	if errors.Is(err, ErrNoInput) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "s", "sim":
		return true, nil
	}
	return false, nil
}

// Ask prints prompt to ErrOut and reads one trimmed line from In.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	line, err := c.readLine(ctx, prompt)
	return strings.TrimSpace(line), err
}

// AskSecret reads a password. On a terminal the input is not echoed;
// otherwise one line is read. Surrounding spaces are part of the answer.
func (c *Console) AskSecret(ctx context.Context, prompt string) (string, error) {
	if c.ttyFd < 0 {
		return c.readLine(ctx, prompt)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.ErrOut, prompt)

	c.readMu.Lock()
	b, err := term.ReadPassword(c.ttyFd)
	c.readMu.Unlock()

	fmt.Fprintln(c.ErrOut)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readLine prints prompt and returns the next line of In without its
// line terminator.
func (c *Console) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.ErrOut, prompt)

	c.readMu.Lock()
	line, err := c.in.ReadString('\n')
	c.readMu.Unlock()

	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return line, nil
}
