package tokenstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subflow/admin-client/internal/config"
	"github.com/subflow/admin-client/internal/tokenstore"
)

// Интеграционный тест требует запущенного redis, адрес берётся из REDIS_ADDR.
func redisConfig(t *testing.T) config.RedisConnection {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set, skipping redis integration test")
	}
	return config.RedisConnection{
		AddressRedis: addr,
		DialTimeout:  5 * time.Second,
		TimeoutRedis: 3 * time.Second,
	}
}

func TestRedis_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store, err := tokenstore.NewRedis(ctx, redisConfig(t), "admin-client-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Clear(ctx) })

	require.NoError(t, store.SaveAccess(ctx, "access-123"))
	require.NoError(t, store.SaveRefresh(ctx, "refresh-456"))

	access, refresh, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-123", access)
	assert.Equal(t, "refresh-456", refresh)

	require.NoError(t, store.Clear(ctx))

	access, refresh, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestRedis_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := tokenstore.NewRedis(ctx, redisConfig(t), "admin-client-test")
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
}
