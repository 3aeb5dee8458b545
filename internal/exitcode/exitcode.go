// Package exitcode defines exit codes for the CLI.
package exitcode

import "tasktrack/internal/apperr"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, not found).
	UserError = 1

	// AuthError indicates an auth error (not logged in, credentials rejected).
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// For maps a workflow error to an exit code.
func For(err error) int {
	if err == nil {
		return Success
	}
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindBadRequest, apperr.KindNotFound, apperr.KindConflict:
		return UserError
	case apperr.KindUnauthenticated, apperr.KindUnauthorized:
		return AuthError
	default:
		return BackendError
	}
}
