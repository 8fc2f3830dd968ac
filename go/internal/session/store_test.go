package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFileIsEmptySession(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	sess, err := store.Load()
	require.NoError(t, err)
	require.False(t, sess.Valid())
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(Session{Authenticated: true, Password: "secret"}))

	sess, err := store.Load()
	require.NoError(t, err)
	require.True(t, sess.Valid())
	require.Equal(t, "secret", sess.Password)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(Session{Authenticated: true, Password: "secret"}))

	require.NoError(t, store.Clear())

	sess, err := store.Load()
	require.NoError(t, err)
	require.False(t, sess.Valid())

	// Clearing an already-missing file is fine.
	require.NoError(t, store.Clear())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
}

func TestSessionValid(t *testing.T) {
	require.False(t, Session{}.Valid())
	require.False(t, Session{Authenticated: true}.Valid())
	require.False(t, Session{Password: "secret"}.Valid())
	require.True(t, Session{Authenticated: true, Password: "secret"}.Valid())
}
