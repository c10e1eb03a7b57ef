package kv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteGetMissingKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	_, ok, err := store.Get("nope")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteSetAndGet(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Set("state", `{"daysActive":1}`))

	value, ok, err := store.Get("state")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"daysActive":1}`, value)
}

func TestSQLiteSetOverwrites(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Set("state", "first"))
	require.NoError(t, store.Set("state", "second"))

	value, ok, err := store.Get("state")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", value)
}
