// Package guard keeps unauthenticated sessions out of protected views.
package guard

import (
	"context"
	"errors"

	"tasktrack/internal/store"
	"tasktrack/internal/workflow"
)

// ErrRedirected is returned by Protect when the view was not rendered
// because the session is not authenticated.
var ErrRedirected = errors.New("not authenticated: redirected to login")

// Decision is the outcome of evaluating the session.
type Decision int

const (
	// Loading means the persisted session has not been read yet; nothing
	// protected may be shown.
	Loading Decision = iota
	Redirect
	Allow
)

func (d Decision) String() string {
	switch d {
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	default:
		return "loading"
	}
}

// Check evaluates the session without side effects.
func Check(s *store.SessionStore) Decision {
	if s.Authenticated() {
		return Allow
	}
	if !s.Loaded() {
		return Loading
	}
	return Redirect
}

// Guard protects views behind an authenticated session.
type Guard struct {
	session *store.SessionStore
	nav     workflow.Navigator
	// restore resolves the Loading state (normally workflow.Auth.Restore).
	restore func(ctx context.Context) error
}

// New returns a guard. restore may be nil when sessions are never rehydrated.
func New(session *store.SessionStore, nav workflow.Navigator, restore func(ctx context.Context) error) *Guard {
	return &Guard{session: session, nav: nav, restore: restore}
}

// Protect renders the view only for an authenticated session. A session that
// has not been loaded gets exactly one restore attempt before the decision
// is final; anything short of Allow navigates to login without rendering.
func (g *Guard) Protect(ctx context.Context, render func(ctx context.Context) error) error {
	decision := Check(g.session)
	if decision == Loading || (decision == Redirect && g.session.Token() != "") {
		if g.restore != nil {
			if err := g.restore(ctx); err != nil {
				g.nav.Navigate(workflow.RouteLogin)
				return errors.Join(ErrRedirected, err)
			}
		}
		decision = Check(g.session)
	}

	if decision != Allow {
		g.nav.Navigate(workflow.RouteLogin)
		return ErrRedirected
	}
	return render(ctx)
}
