package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/config"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sq, err := OpenSQLite(filepath.Join(dir, "db", "storage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "token.json")),
		"sqlite": sq,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(TokenKey)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(TokenKey, "abc"))
			require.NoError(t, s.Set(TokenKey, "def"))
			v, ok, err := s.Get(TokenKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "def", v)

			require.NoError(t, s.Delete(TokenKey))
			require.NoError(t, s.Delete(TokenKey))
			_, ok, err = s.Get(TokenKey)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	s := NewFileStore(path)

	require.NoError(t, s.Set(TokenKey, "abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_RemovedWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	s := NewFileStore(path)
	require.NoError(t, s.Set(TokenKey, "abc"))
	require.NoError(t, s.Set("other", "x"))

	require.NoError(t, s.Delete(TokenKey))
	assert.FileExists(t, path)

	require.NoError(t, s.Delete("other"))
	assert.NoFileExists(t, path)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s := NewFileStore(path)

	_, _, err := s.Get(TokenKey)
	assert.ErrorContains(t, err, "invalid token.json")

	require.NoError(t, s.Set(TokenKey, "abc"))
	v, ok, err := s.Get(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestFileStore_DeleteCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	require.NoError(t, NewFileStore(path).Delete(TokenKey))
	assert.NoFileExists(t, path)
}

func TestSQLiteStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(TokenKey, "abc"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestOpen_SelectsDriver(t *testing.T) {
	cfg := config.New(t.TempDir())

	s, err := Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	assert.Equal(t, cfg.TokenPath(), s.(*FileStore).Path())

	cfg.StorageDriver = config.DriverSQLite
	s, err = Open(cfg)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStore{}, s)

	cfg.StorageDriver = "redis"
	_, err = Open(cfg)
	assert.EqualError(t, err, "unknown storage driver: redis")
}
