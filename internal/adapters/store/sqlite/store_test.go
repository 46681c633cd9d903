package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bnema/world-saver-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestStorePutGetOverwrite(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "world_saver_username_v1", "Ada"))
	require.NoError(t, store.Put(ctx, "world_saver_username_v1", "Grace"))

	got, err := store.Get(ctx, "world_saver_username_v1")
	require.NoError(t, err)
	assert.Equal(t, "Grace", got)
}

func TestStoreGetMissingKeyReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestStoreDeleteRemovesEntryAndIsIdempotent(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "v"))
	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.db")
	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(context.Background(), "k", "persisted"))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}
