package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/service"
	"tasktrack/internal/storage"
)

func newSession(t *testing.T) (*SessionStore, *storage.FileStore) {
	t.Helper()
	fs := storage.NewFileStore(filepath.Join(t.TempDir(), "token.json"))
	return NewSessionStore(fs), fs
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestSessionStore_SetAuthPersists(t *testing.T) {
	s, fs := newSession(t)
	user := service.User{ID: "u1", Email: "ana@example.com", Name: "Ana"}

	require.NoError(t, s.SetAuth(user, "tok"))

	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, &user, s.User())

	v, ok, err := fs.Get(storage.TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestSessionStore_SetAuthRejectsEmptyToken(t *testing.T) {
	s, _ := newSession(t)

	err := s.SetAuth(service.User{ID: "u1"}, "")

	assert.Error(t, err)
	assert.False(t, s.Authenticated())
}

func TestSessionStore_UserIsACopy(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.SetAuth(service.User{ID: "u1", Name: "Ana"}, "tok"))

	u := s.User()
	u.Name = "changed"

	assert.Equal(t, "Ana", s.User().Name)
}

func TestSessionStore_LogoutIsIdempotent(t *testing.T) {
	s, fs := newSession(t)
	require.NoError(t, s.SetAuth(service.User{ID: "u1"}, "tok"))

	require.NoError(t, s.Logout())
	require.NoError(t, s.Logout())

	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
	_, ok, err := fs.Get(storage.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_SetUserNeedsToken(t *testing.T) {
	s, _ := newSession(t)

	s.SetUser(service.User{ID: "u1"})
	assert.Nil(t, s.User())

	require.NoError(t, s.SetAuth(service.User{ID: "u1", Name: "Ana"}, "tok"))
	s.SetUser(service.User{ID: "u1", Name: "Ana Maria"})
	assert.Equal(t, "Ana Maria", s.User().Name)
}

func TestSessionStore_LoadRestoresTokenOnly(t *testing.T) {
	s, fs := newSession(t)
	require.NoError(t, fs.Set(storage.TokenKey, "opaque"))

	require.NoError(t, s.Load())

	assert.True(t, s.Loaded())
	assert.Equal(t, "opaque", s.Token())
	assert.False(t, s.Authenticated(), "no user until restored")
}

func TestSessionStore_LoadEmpty(t *testing.T) {
	s, _ := newSession(t)
	assert.False(t, s.Loaded())

	require.NoError(t, s.Load())

	assert.True(t, s.Loaded())
	assert.Empty(t, s.Token())
}

func TestSessionStore_LoadDiscardsExpiredJWT(t *testing.T) {
	s, fs := newSession(t)
	require.NoError(t, fs.Set(storage.TokenKey, signed(t, time.Now().Add(-time.Hour))))

	require.NoError(t, s.Load())

	assert.Empty(t, s.Token())
	_, ok, err := fs.Get(storage.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok, "expired token removed from storage")
}

func TestSessionStore_LoadKeepsValidJWT(t *testing.T) {
	s, fs := newSession(t)
	tok := signed(t, time.Now().Add(time.Hour))
	require.NoError(t, fs.Set(storage.TokenKey, tok))

	require.NoError(t, s.Load())

	assert.Equal(t, tok, s.Token())
}

func TestSessionStore_LoadUsesClock(t *testing.T) {
	s, fs := newSession(t)
	exp := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Set(storage.TokenKey, signed(t, exp)))
	s.now = func() time.Time { return exp.Add(-time.Minute) }

	require.NoError(t, s.Load())

	assert.NotEmpty(t, s.Token())
}
