package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"feedback-board/internal/domain"
)

func TestRedisCacheSetGetDelete(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedis(client)

	_, err := c.Get(ctx, "/")
	require.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "/", []byte("<html>"), time.Minute))
	got, err := c.Get(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, []byte("<html>"), got)
	require.True(t, srv.Exists("page:/"))

	require.NoError(t, c.Delete(ctx, "/"))
	_, err = c.Get(ctx, "/")
	require.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCacheExpires(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedis(client)

	require.NoError(t, c.Set(ctx, "/", []byte("x"), time.Second))
	srv.FastForward(2 * time.Second)
	_, err := c.Get(ctx, "/")
	require.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCacheSetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemory(1 << 20)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.Get(ctx, "/")
	require.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "/", []byte("<html>"), time.Minute))
	got, err := c.Get(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, []byte("<html>"), got)

	require.NoError(t, c.Delete(ctx, "/"))
	_, err = c.Get(ctx, "/")
	require.ErrorIs(t, err, domain.ErrCacheMiss)
}
