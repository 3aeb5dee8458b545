package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/app"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
)

var (
	errTaskNotFound  = errors.New("task not found")
	errAmbiguousTask = errors.New("ambiguous task reference")
)

// findTask resolves ref against tasks in dashboard order. An id matches
// exactly or as a unique prefix.
func findTask(tasks []service.Task, ref TaskRef) (service.Task, error) {
	ordered := dashboardOrder(tasks)

	if ref.ID == "" {
		if ref.Num < 1 || ref.Num > len(ordered) {
			return service.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
		}
		return ordered[ref.Num-1], nil
	}

	for _, t := range ordered {
		if t.ID == ref.ID {
			return t, nil
		}
	}

	var match *service.Task
	for i := range ordered {
		if !strings.HasPrefix(ordered[i].ID, ref.ID) {
			continue
		}
		if match != nil {
			return service.Task{}, fmt.Errorf("%w: %s", errAmbiguousTask, ref.ID)
		}
		match = &ordered[i]
	}
	if match == nil {
		return service.Task{}, fmt.Errorf("%w: %s", errTaskNotFound, ref.ID)
	}
	return *match, nil
}

// resolveTask loads the dashboard and resolves the reference in args.
// Failures are reported on errOut; the returned code is non-zero on failure.
func resolveTask(ctx context.Context, a *app.App, args []string, errOut io.Writer) (service.Task, int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}

	// the workflow reports load failures itself
	if err := a.TaskFlow.Load(ctx); err != nil {
		return service.Task{}, exitcode.For(err)
	}

	task, err := findTask(a.Tasks.Tasks(), ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}
	return task, exitcode.Success
}
