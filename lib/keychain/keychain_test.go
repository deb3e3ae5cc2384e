package keychain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "keychain.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(ctx, "227524AB")
	require.ErrorIs(t, err, ErrNoKey)

	require.NoError(t, store.Set(ctx, "227524AB", "1089659"))
	key, err := store.Get(ctx, "227524AB")
	require.NoError(t, err)
	require.Equal(t, "1089659", key)

	// upsert replaces the key
	require.NoError(t, store.Set(ctx, "227524AB", "1089660"))
	key, err = store.Get(ctx, "227524AB")
	require.NoError(t, err)
	require.Equal(t, "1089660", key)

	_, err = store.Get(ctx, "OTHER")
	require.ErrorIs(t, err, ErrNoKey)
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "keychain.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
