package tokenstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "roadtrip", "credentials.yaml")),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Get(AccessTokenKey)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, Save(s, Credentials{AccessToken: "a1", RefreshToken: "r1"}))
			c, err := Load(s)
			require.NoError(t, err)
			assert.Equal(t, Credentials{AccessToken: "a1", RefreshToken: "r1"}, c)

			require.NoError(t, s.Set(AccessTokenKey, "a2"))
			c, err = Load(s)
			require.NoError(t, err)
			assert.Equal(t, "a2", c.AccessToken)
			assert.Equal(t, "r1", c.RefreshToken)

			require.NoError(t, s.Clear())
			c, err = Load(s)
			require.NoError(t, err)
			assert.Equal(t, Credentials{}, c)
		})
	}
}

func TestStoreRejectsUnknownKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get("password")
			require.ErrorIs(t, err, ErrUnknownKey)
			require.ErrorIs(t, s.Set("password", "x"), ErrUnknownKey)
		})
	}
}

func TestFileStorePermissionsAndPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	s := NewFileStore(path)
	require.NoError(t, s.Set(RefreshTokenKey, "refresh"))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	again := NewFileStore(path)
	got, err := again.Get(RefreshTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "refresh", got)
}

func TestFileStoreClearMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, s.Clear())
}

func TestFileStoreRemovesFileWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	s := NewFileStore(path)
	require.NoError(t, s.Set(AccessTokenKey, "a"))
	require.NoError(t, s.Set(AccessTokenKey, ""))
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("access_token: [unterminated"), 0o600))
	_, err := NewFileStore(path).Get(AccessTokenKey)
	assert.Error(t, err)
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "roadtrip", "credentials.yaml"), got)
}
