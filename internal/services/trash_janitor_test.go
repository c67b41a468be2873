package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	redisInfra "github.com/fastygo/alle/internal/infrastructure/redis"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) CleanOld(context.Context) (int64, error) {
	p.calls.Add(1)
	return 2, p.err
}

func TestNewTrashJanitorRejectsBadSchedule(t *testing.T) {
	_, err := NewTrashJanitor(&countingPurger{}, nil, nil, JanitorConfig{Schedule: "every tuesday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRASH_PURGE_SCHEDULE")

	for _, schedule := range []string{"@daily", "@every 1h", "0 3 * * *", "30 0 3 * * *"} {
		_, err := NewTrashJanitor(&countingPurger{}, nil, nil, JanitorConfig{Schedule: schedule})
		assert.NoError(t, err, schedule)
	}
}

func TestRunOnceWithoutLocker(t *testing.T) {
	p := &countingPurger{}
	j, err := NewTrashJanitor(p, nil, zaptest.NewLogger(t), JanitorConfig{Schedule: "@daily"})
	require.NoError(t, err)

	ran, err := j.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int32(1), p.calls.Load())

	p.err = errors.New("database error: locked")
	ran, err = j.RunOnce(context.Background())
	assert.True(t, ran)
	assert.EqualError(t, err, "database error: locked")
}

func TestRunOnceSkipsWhenLockHeld(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	locker := redisInfra.NewLocker(client, "alle:")

	p := &countingPurger{}
	j, err := NewTrashJanitor(p, locker, zaptest.NewLogger(t), JanitorConfig{Schedule: "@daily", Timeout: time.Minute})
	require.NoError(t, err)

	// another replica is purging
	release, ok, err := locker.TryLock(context.Background(), janitorLockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ran, err := j.RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Zero(t, p.calls.Load())

	require.NoError(t, release(context.Background()))
	ran, err = j.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int32(1), p.calls.Load())
	assert.False(t, mr.Exists("alle:"+janitorLockKey), "lock released after the run")
}

func TestStartStop(t *testing.T) {
	j, err := NewTrashJanitor(&countingPurger{}, nil, nil, JanitorConfig{Schedule: "@every 1h"})
	require.NoError(t, err)
	j.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	j.Stop(ctx)
}
