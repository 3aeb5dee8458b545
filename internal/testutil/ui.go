package testutil

import (
	"context"
	"sync"

	"tasktrack/internal/workflow"
)

// RecordingUI implements the workflow Notifier, Navigator and Confirmer
// interfaces and records every interaction.
type RecordingUI struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	routes    []workflow.Route
	questions []string

	// Answer is returned by Confirm.
	Answer bool
}

// Success implements workflow.Notifier.
func (r *RecordingUI) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

// Error implements workflow.Notifier.
func (r *RecordingUI) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

// Navigate implements workflow.Navigator.
func (r *RecordingUI) Navigate(route workflow.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

// Confirm implements workflow.Confirmer.
func (r *RecordingUI) Confirm(ctx context.Context, question string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = append(r.questions, question)
	return r.Answer, nil
}

// Successes returns the success notices in order.
func (r *RecordingUI) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}

// Errors returns the error notices in order.
func (r *RecordingUI) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

// Routes returns the navigation targets in order.
func (r *RecordingUI) Routes() []workflow.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]workflow.Route(nil), r.routes...)
}

// Questions returns the confirmation prompts in order.
func (r *RecordingUI) Questions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.questions...)
}
