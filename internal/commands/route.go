package commands

import (
	"fmt"
	"io"

	"tasktrack/internal/app"
	"tasktrack/internal/workflow"
)

// nextCommand is the command that renders each view.
var nextCommand = map[workflow.Route]string{
	workflow.RouteLogin:          "tasktrack login",
	workflow.RouteRegister:       "tasktrack register",
	workflow.RouteDashboard:      "tasktrack list",
	workflow.RouteForgotPassword: "tasktrack forgot-password",
	workflow.RouteResetPassword:  "tasktrack reset-password",
}

// showRoute prints a hint for the view the workflow navigated to.
func showRoute(a *app.App, out io.Writer) {
	if a.Config.Quiet {
		return
	}
	if cmd, ok := nextCommand[a.Console.Route()]; ok {
		fmt.Fprintf(out, "next: %s\n", cmd)
	}
}
