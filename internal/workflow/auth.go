package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tasktrack/internal/apperr"
	"tasktrack/internal/i18n"
	"tasktrack/internal/service"
	"tasktrack/internal/store"
	"tasktrack/internal/validate"
)

// ResetRedirectDelay is how long the reset confirmation stays visible before
// the client navigates to login.
const ResetRedirectDelay = 3 * time.Second

// Auth orchestrates login, registration, logout and password recovery.
type Auth struct {
	svc     service.Service
	session *store.SessionStore
	notify  Notifier
	nav     Navigator
	tr      *i18n.Translator
	sleep   Sleeper

	// RedirectDelay overrides ResetRedirectDelay when non-zero.
	RedirectDelay time.Duration

	states tracker
}

// NewAuth builds the auth workflow.
func NewAuth(d Deps) *Auth {
	d = d.withDefaults()
	return &Auth{
		svc:     d.Service,
		session: d.Session,
		notify:  d.Notifier,
		nav:     d.Navigator,
		tr:      d.Translator,
		sleep:   d.Sleep,
	}
}

// State returns the progress of op.
func (a *Auth) State(op Op) State {
	return a.states.get(op)
}

// Login validates the form, authenticates and opens the dashboard.
// On failure the password field is cleared and the session is left untouched.
func (a *Auth) Login(ctx context.Context, f *LoginForm) error {
	f.Error = ""
	f.ShowPasswordHints = false

	errs := validate.FieldErrors{}
	errs.Set("email", validate.Email(f.Email))
	errs.Set("password", validate.Password(f.Password))
	f.Errors = localize(a.tr, errs)
	if !errs.Empty() {
		return apperr.Validation(f.Errors)
	}

	a.states.set(OpLogin, StateInFlight)
	resp, err := a.svc.Login(ctx, service.LoginRequest{Email: f.Email, Password: f.Password})
	if err == nil {
		err = a.session.SetAuth(resp.User, resp.AccessToken)
	}
	if err != nil {
		a.states.set(OpLogin, StateFailed)
		f.Error = describe(a.tr, OpLogin, err)
		f.ShowPasswordHints = apperr.KindOf(err) == apperr.KindUnauthorized
		f.Password = ""
		return fmt.Errorf("login: %w", err)
	}

	a.states.set(OpLogin, StateSucceeded)
	a.notify.Success(a.tr.T(i18n.LoginSuccess))
	a.nav.Navigate(RouteDashboard)
	return nil
}

// Register validates the form, creates the account and opens the dashboard.
func (a *Auth) Register(ctx context.Context, f *RegisterForm) error {
	f.Error = ""

	errs := validate.FieldErrors{}
	errs.Set("name", validate.Name(f.Name))
	errs.Set("email", validate.EmailStrict(f.Email))
	errs.Set("password", validate.Password(f.Password))
	errs.Set("confirmPassword", validate.Confirmation(f.Password, f.ConfirmPassword))
	f.Errors = localize(a.tr, errs)
	if !errs.Empty() {
		return apperr.Validation(f.Errors)
	}

	a.states.set(OpRegister, StateInFlight)
	resp, err := a.svc.Register(ctx, service.RegisterRequest{
		Name:     f.Name,
		Email:    f.Email,
		Password: f.Password,
	})
	if err == nil {
		err = a.session.SetAuth(resp.User, resp.AccessToken)
	}
	if err != nil {
		a.states.set(OpRegister, StateFailed)
		switch apperr.KindOf(err) {
		case apperr.KindConflict:
			f.Errors["email"] = describe(a.tr, OpRegister, err)
		case apperr.KindBadRequest:
			fields := apperr.FieldsOf(err)
			for field, msg := range fields {
				f.Errors[field] = msg
			}
			if len(fields) == 0 {
				f.Error = describe(a.tr, OpRegister, err)
			}
		default:
			f.Error = describe(a.tr, OpRegister, err)
		}
		return fmt.Errorf("register: %w", err)
	}

	a.states.set(OpRegister, StateSucceeded)
	a.notify.Success(a.tr.T(i18n.RegisterSuccess))
	a.nav.Navigate(RouteDashboard)
	return nil
}

// ForgotPassword requests a reset link. The same success message is shown
// whether or not the account exists, so a 404 counts as success.
func (a *Auth) ForgotPassword(ctx context.Context, f *ForgotPasswordForm) error {
	f.Error = ""
	f.Success = ""

	errs := validate.FieldErrors{}
	errs.Set("email", validate.Email(f.Email))
	f.Errors = localize(a.tr, errs)
	if !errs.Empty() {
		return apperr.Validation(f.Errors)
	}

	a.states.set(OpForgotPassword, StateInFlight)
	err := a.svc.ForgotPassword(ctx, f.Email)
	if err != nil && apperr.KindOf(err) != apperr.KindNotFound {
		a.states.set(OpForgotPassword, StateFailed)
		f.Error = describe(a.tr, OpForgotPassword, err)
		return fmt.Errorf("forgot password: %w", err)
	}

	a.states.set(OpForgotPassword, StateSucceeded)
	f.Success = a.tr.T(i18n.ForgotSuccess)
	f.Email = ""
	return nil
}

// ResetPassword sets a new password with a reset token, then returns to the
// login view after RedirectDelay. An empty token fails locally without any
// network call. If ctx ends during the delay, no navigation happens.
func (a *Auth) ResetPassword(ctx context.Context, f *ResetPasswordForm) error {
	f.Error = ""
	f.Success = ""

	if strings.TrimSpace(f.Token) == "" {
		f.Error = a.tr.T(i18n.ResetInvalidToken)
		f.Errors = validate.FieldErrors{"token": f.Error}
		return apperr.Validation(f.Errors)
	}

	errs := validate.FieldErrors{}
	errs.Set("password", validate.Password(f.Password))
	errs.Set("confirmPassword", validate.Confirmation(f.Password, f.ConfirmPassword))
	f.Errors = localize(a.tr, errs)
	if !errs.Empty() {
		return apperr.Validation(f.Errors)
	}

	a.states.set(OpResetPassword, StateInFlight)
	err := a.svc.ResetPassword(ctx, service.ResetPasswordRequest{
		Token:    strings.TrimSpace(f.Token),
		Password: f.Password,
	})
	if err != nil {
		a.states.set(OpResetPassword, StateFailed)
		f.Error = describe(a.tr, OpResetPassword, err)
		return fmt.Errorf("reset password: %w", err)
	}

	a.states.set(OpResetPassword, StateSucceeded)
	f.Success = a.tr.T(i18n.ResetSuccess)
	a.notify.Success(f.Success)

	delay := a.RedirectDelay
	if delay == 0 {
		delay = ResetRedirectDelay
	}
	if a.sleep(ctx, delay) == nil {
		a.nav.Navigate(RouteLogin)
	}
	return nil
}

// Logout ends the session and returns to the login view. Safe to call when
// already logged out.
func (a *Auth) Logout() error {
	err := a.session.Logout()
	a.notify.Success(a.tr.T(i18n.LogoutSuccess))
	a.nav.Navigate(RouteLogin)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Restore turns a persisted token into an authenticated session by asking
// the backend who owns it. A rejected token is dropped; any other failure
// leaves the session unauthenticated with the token kept for a later try.
func (a *Auth) Restore(ctx context.Context) error {
	if !a.session.Loaded() {
		if err := a.session.Load(); err != nil {
			return err
		}
	}
	token := a.session.Token()
	if token == "" || a.session.Authenticated() {
		return nil
	}

	user, err := a.svc.Me(ctx)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnauthorized {
			a.notify.Error(a.tr.T(i18n.SessionExpired))
			return a.session.Logout()
		}
		return fmt.Errorf("restore session: %w", err)
	}
	return a.session.SetAuth(user, token)
}

// Refresh reloads the current user from the backend.
func (a *Auth) Refresh(ctx context.Context) (service.User, error) {
	if !a.session.Authenticated() {
		return service.User{}, apperr.ErrUnauthenticated
	}
	user, err := a.svc.Me(ctx)
	if err != nil {
		return service.User{}, fmt.Errorf("refresh user: %w", err)
	}
	a.session.SetUser(user)
	return user, nil
}
