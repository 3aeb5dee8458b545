// Package store holds the in-memory client state: the session and the task list.
//
// Stores are plain structs created by the caller; there are no package-level
// instances. Setters are synchronous and safe for concurrent use.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tasktrack/internal/service"
	"tasktrack/internal/storage"
)

// SessionStore holds the current user and token. The session is
// authenticated only when both are present.
type SessionStore struct {
	mu      sync.RWMutex
	persist storage.Store
	now     func() time.Time

	user   *service.User
	token  string
	loaded bool
}

// NewSessionStore returns an empty session persisting its token to persist.
func NewSessionStore(persist storage.Store) *SessionStore {
	return &SessionStore{persist: persist, now: time.Now}
}

// User returns a copy of the current user, nil when logged out.
func (s *SessionStore) User() *service.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current token, "" when none is held.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a user and token are both held.
func (s *SessionStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Loaded reports whether Load has run.
func (s *SessionStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// SetAuth persists token and marks the session authenticated. Call only with
// the result of a successful authentication.
func (s *SessionStore) SetAuth(user service.User, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := s.persist.Set(storage.TokenKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
	s.loaded = true
	return nil
}

// SetUser replaces the user of an authenticated session.
func (s *SessionStore) SetUser(user service.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return
	}
	s.user = &user
}

// Logout clears the in-memory session and the persisted token. It performs no
// navigation and is safe to call when already logged out.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.persist.Delete(storage.TokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Load reads the persisted token into memory. The session stays
// unauthenticated until a user is attached (see workflow.Auth.Restore).
// A JWT whose exp claim has passed is discarded and removed from storage;
// tokens that are not JWTs are kept as-is.
func (s *SessionStore) Load() error {
	token, ok, err := s.persist.Get(storage.TokenKey)

	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if !ok || token == "" {
		return nil
	}
	if s.expired(token) {
		return s.Logout()
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// expired reports whether token is a JWT with an exp claim in the past.
// The signature is not checked: the backend stays the authority.
func (s *SessionStore) expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Before(claims.ExpiresAt.Time)
}
