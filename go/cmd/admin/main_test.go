package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/session"
)

func TestSeedSessionStoresCredential(t *testing.T) {
	store := session.NewMemStore()

	require.NoError(t, seedSession(store, "secret"))

	sess, err := store.Load()
	require.NoError(t, err)
	require.True(t, sess.Valid())
	require.Equal(t, "secret", sess.Password)
}

func TestSeedSessionKeepsExistingSession(t *testing.T) {
	store := session.NewMemStore()
	require.NoError(t, store.Save(session.Session{Authenticated: true, Password: "stored"}))

	require.NoError(t, seedSession(store, "env"))

	sess, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "stored", sess.Password)
}
