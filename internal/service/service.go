// Package service defines the backend-agnostic interface for auth and task operations.
package service

import "context"

// Service defines the interface for backend operations.
// All HTTP calls go through this interface.
// Workflows and commands never build requests directly.
type Service interface {
	// Register creates an account and returns its first session.
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	// Login exchanges credentials for a session.
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)

	// Me returns the user owning the current bearer token.
	Me(ctx context.Context) (User, error)

	// ForgotPassword asks the backend to mail a reset link.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password using a reset token.
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// ListTasks returns every task of the current user in backend order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a task and returns the backend's canonical copy.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask applies a partial update and returns the backend's copy.
	UpdateTask(ctx context.Context, id string, in TaskInput) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
