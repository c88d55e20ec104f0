package tokenstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subflow/admin-client/internal/tokenstore"
)

func TestFile_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := tokenstore.NewFile(path)

	require.NoError(t, store.SaveAccess(ctx, "access-123"))
	require.NoError(t, store.SaveRefresh(ctx, "refresh-456"))

	access, refresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-123", access)
	assert.Equal(t, "refresh-456", refresh)
}

func TestFile_LoadSurvivesRestart(t *testing.T) {
	// Новый экземпляр хранилища по тому же пути имитирует перезапуск процесса.
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")

	first := tokenstore.NewFile(path)
	require.NoError(t, first.SaveAccess(ctx, "persisted-token"))

	second := tokenstore.NewFile(path)
	access, _, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", access)
}

func TestFile_LoadEmptyWhenFileMissing(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewFile(filepath.Join(t.TempDir(), "nope", "tokens.json"))

	access, refresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestFile_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := tokenstore.NewFile(path)

	require.NoError(t, store.SaveAccess(ctx, "access-123"))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	access, refresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestFile_SaveAccessKeepsRefresh(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := tokenstore.NewFile(path)

	require.NoError(t, store.SaveRefresh(ctx, "refresh-456"))
	require.NoError(t, store.SaveAccess(ctx, "access-123"))

	_, refresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refresh-456", refresh)
}

func TestFile_FilePermissions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := tokenstore.NewFile(path)

	require.NoError(t, store.SaveAccess(ctx, "access-123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
