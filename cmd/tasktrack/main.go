// Package main is the entry point for the tasktrack CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasktrack/internal/app"
	"tasktrack/internal/cli"
	"tasktrack/internal/commands"
	"tasktrack/internal/config"
	"tasktrack/internal/ui"
)

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create app factory
	factory := func(ctx context.Context, cfg *config.Config, console *ui.Console) (*app.App, error) {
		return app.Open(cfg, console, app.NewLogger(cfg, os.Stderr))
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
