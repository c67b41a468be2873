package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/alle/internal/config"
)

func TestNewClientDisabledWithoutURL(t *testing.T) {
	client, err := NewClient(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewClientPings(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr(), DialTimeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	assert.NoError(t, Pinger{Client: client}.Ping(context.Background()))

	_, err = NewClient(context.Background(), config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}

func TestLockerIsExclusive(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	a := NewLocker(client, "alle:lock:")
	release, ok, err := a.TryLock(ctx, "trash", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("alle:lock:trash"))

	_, ok, err = a.TryLock(ctx, "trash", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("alle:lock:trash"))

	_, ok, err = a.TryLock(ctx, "trash", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLockerReleaseKeepsForeignLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	l := NewLocker(client, "")
	release, ok, err := l.TryLock(ctx, "job", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok, err = l.TryLock(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// the first holder's token expired, so its release is a no-op
	require.NoError(t, release(ctx))
	assert.True(t, mr.Exists("job"))
}
