package workflow

import (
	"tasktrack/internal/apperr"
	"tasktrack/internal/i18n"
	"tasktrack/internal/validate"
)

// describe returns the localized message for a failed operation.
// Status-specific wording comes first, then the backend's own message,
// then connectivity, then the operation's generic fallback.
func describe(tr *i18n.Translator, op Op, err error) string {
	kind := apperr.KindOf(err)

	switch op {
	case OpLogin:
		switch kind {
		case apperr.KindUnauthorized:
			return tr.T(i18n.InvalidCredentials)
		case apperr.KindNotFound:
			return tr.T(i18n.UserNotFound)
		case apperr.KindRateLimited:
			return tr.T(i18n.LoginRateLimited)
		}
	case OpRegister:
		if kind == apperr.KindConflict {
			return tr.T(i18n.EmailTaken)
		}
	case OpForgotPassword:
		if kind == apperr.KindRateLimited {
			return tr.T(i18n.RateLimited)
		}
	case OpResetPassword:
		switch kind {
		case apperr.KindBadRequest:
			return tr.T(i18n.ResetTokenExpired)
		case apperr.KindRateLimited:
			return tr.T(i18n.RateLimited)
		case apperr.KindNetwork:
			return tr.T(i18n.NetworkError)
		}
		// the backend's text is not shown here; it may describe the token
		return tr.T(i18n.ResetFailed)
	case OpLoadTasks, OpCreateTask, OpUpdateTask, OpDeleteTask:
		switch kind {
		case apperr.KindUnauthenticated:
			return tr.T(i18n.NotAuthenticated)
		case apperr.KindUnauthorized:
			return tr.T(i18n.SessionExpired)
		}
		return tr.T(taskFallback[op])
	}

	if msg := apperr.MessageOf(err); msg != "" {
		return msg
	}
	if kind == apperr.KindNetwork {
		return tr.T(i18n.NetworkError)
	}
	return tr.T(authFallback[op])
}

var authFallback = map[Op]string{
	OpLogin:          i18n.LoginFailed,
	OpRegister:       i18n.RegisterFailed,
	OpForgotPassword: i18n.ForgotFailed,
	OpResetPassword:  i18n.ResetFailed,
}

var taskFallback = map[Op]string{
	OpLoadTasks:  i18n.TasksLoadFailed,
	OpCreateTask: i18n.TaskCreateFailed,
	OpUpdateTask: i18n.TaskUpdateFailed,
	OpDeleteTask: i18n.TaskDeleteFailed,
}

// localize translates every message key of errs.
func localize(tr *i18n.Translator, errs validate.FieldErrors) validate.FieldErrors {
	out := make(validate.FieldErrors, len(errs))
	for field, key := range errs {
		if key != "" {
			out[field] = tr.T(key)
		}
	}
	return out
}
