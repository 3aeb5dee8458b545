// Package workflow turns user intents into backend calls and store updates.
//
// Workflows own no UI. They report through the Notifier, Navigator and
// Confirmer interfaces, which the console (package ui) or a test implements.
package workflow

import (
	"context"
	"sync"
	"time"

	"tasktrack/internal/i18n"
	"tasktrack/internal/service"
	"tasktrack/internal/store"
)

// Route names a view the client can show.
type Route string

const (
	RouteLogin          Route = "login"
	RouteRegister       Route = "register"
	RouteDashboard      Route = "dashboard"
	RouteForgotPassword Route = "forgot-password"
	RouteResetPassword  Route = "reset-password"
)

// Notifier shows transient success and error notices.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Navigator switches the current view.
type Navigator interface {
	Navigate(route Route)
}

// Confirmer asks a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Deps are the collaborators shared by the workflows.
type Deps struct {
	Service    service.Service
	Session    *store.SessionStore
	Tasks      *store.TaskStore
	Notifier   Notifier
	Navigator  Navigator
	Confirmer  Confirmer
	Translator *i18n.Translator
	// Sleep defaults to a context-aware timer.
	Sleep Sleeper
}

func (d Deps) withDefaults() Deps {
	if d.Translator == nil {
		d.Translator = i18n.New("")
	}
	if d.Sleep == nil {
		d.Sleep = sleepContext
	}
	if d.Notifier == nil {
		d.Notifier = nopUI{}
	}
	if d.Navigator == nil {
		d.Navigator = nopUI{}
	}
	if d.Confirmer == nil {
		d.Confirmer = nopUI{}
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// nopUI discards notices and navigation and declines every confirmation.
type nopUI struct{}

func (nopUI) Success(string) {}
func (nopUI) Error(string)   {}
func (nopUI) Navigate(Route) {}
func (nopUI) Confirm(context.Context, string) (bool, error) {
	return false, nil
}

// Op identifies a workflow operation for state tracking.
type Op string

const (
	OpLogin          Op = "login"
	OpRegister       Op = "register"
	OpForgotPassword Op = "forgot-password"
	OpResetPassword  Op = "reset-password"
	OpLoadTasks      Op = "load-tasks"
	OpCreateTask     Op = "create-task"
	OpUpdateTask     Op = "update-task"
	OpDeleteTask     Op = "delete-task"
)

// State is the progress of one operation.
type State int

const (
	StateIdle State = iota
	StateInFlight
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInFlight:
		return "in-flight"
	case StateSucceeded:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

type tracker struct {
	mu     sync.Mutex
	states map[Op]State
}

func (t *tracker) set(op Op, s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.states == nil {
		t.states = make(map[Op]State)
	}
	t.states[op] = s
}

func (t *tracker) get(op Op) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.states[op]
}
