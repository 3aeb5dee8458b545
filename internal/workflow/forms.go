package workflow

import (
	"net/url"
	"strings"

	"tasktrack/internal/validate"
)

// LoginForm is the state of the login view.
type LoginForm struct {
	Email    string
	Password string

	// Errors maps field name to a localized message.
	Errors validate.FieldErrors
	// Error is the form-level message after a failed submission.
	Error string
	// ShowPasswordHints is set after the backend rejects the credentials.
	ShowPasswordHints bool
}

// RegisterForm is the state of the registration view.
type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string

	Errors validate.FieldErrors
	Error  string
}

// ForgotPasswordForm is the state of the forgot-password view.
type ForgotPasswordForm struct {
	Email string

	Errors  validate.FieldErrors
	Error   string
	Success string
}

// ResetPasswordForm is the state of the reset-password view.
type ResetPasswordForm struct {
	// Token normally comes from the reset link (see TokenFromLink).
	Token           string
	Password        string
	ConfirmPassword string

	Errors  validate.FieldErrors
	Error   string
	Success string
}

// TokenFromLink extracts the token query parameter from a reset link.
// A bare token is returned unchanged.
func TokenFromLink(link string) string {
	link = strings.TrimSpace(link)
	if !strings.Contains(link, "?") {
		return link
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Query().Get("token")
}
