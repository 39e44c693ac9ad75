package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	store := NewRedis(srv.Addr(), "", 0)
	t.Cleanup(func() { _ = store.Close() })
	return store, srv
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, srv := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	missing, err := store.Get(ctx, "default:emotiguide_user")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Set(ctx, "default:emotiguide_user", []byte(`{"version":1}`)))
	got, err := store.Get(ctx, "default:emotiguide_user")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(got))
	assert.Zero(t, srv.TTL("default:emotiguide_user"))

	require.NoError(t, store.Delete(ctx, "default:emotiguide_user"))
	assert.False(t, srv.Exists("default:emotiguide_user"))
	require.NoError(t, store.Delete(ctx, "default:emotiguide_user"))
}

func TestRedisStore_SurfacesConnectionErrors(t *testing.T) {
	store, srv := newTestRedis(t)
	srv.Close()

	_, err := store.Get(context.Background(), "default:emotiguide_history")
	assert.Error(t, err)
	assert.Error(t, store.Set(context.Background(), "default:emotiguide_history", []byte("[]")))
}

func TestRedisStore_Keys(t *testing.T) {
	store, _ := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "lab:emotiguide_user", []byte("{}")))
	require.NoError(t, store.Set(ctx, "lab:emotiguide_history", []byte("[]")))
	require.NoError(t, store.Set(ctx, "home:emotiguide_user", []byte("{}")))

	keys, err := store.Keys(ctx, "lab:")
	require.NoError(t, err)
	assert.Equal(t, []string{"lab:emotiguide_history", "lab:emotiguide_user"}, keys)
}
