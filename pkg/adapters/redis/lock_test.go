package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/zconv/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_LockUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "session-1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:session-1"), "Lock key should be set in Redis")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:session-1"), "Lock key should be removed after unlock")
}

func TestRedisLocker_Contention(t *testing.T) {
	_, client := newClient(t)
	locker := redis.NewLocker(client, "test:")

	unlock, err := locker.Lock(context.Background(), "session-1", 5*time.Second)
	require.NoError(t, err)
	defer unlock(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "session-1", 5*time.Second)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedisLocker_UnlockKeepsForeignLock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "session-1", 5*time.Second)
	require.NoError(t, err)

	// Someone else took over after expiry
	require.NoError(t, mr.Set("test:lock:session-1", "other"))
	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("test:lock:session-1"))
}

func TestRedisLocker_UncontendedLockIsImmediate(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "zconv:")
	ctx := context.Background()

	start := time.Now()
	unlock, err := locker.Lock(ctx, "4f1c", 5*time.Second)
	require.NoError(t, err)
	defer unlock(ctx)

	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.True(t, mr.Exists("zconv:lock:4f1c"))
	assert.False(t, mr.Exists("zconv:lock:lock:4f1c"))
}

func TestRedisLocker_AcquiresAfterRelease(t *testing.T) {
	_, client := newClient(t)
	locker := redis.NewLocker(client, "zconv:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "4f1c", 5*time.Second)
	require.NoError(t, err)

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = unlock(context.Background())
	}()

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	again, err := locker.Lock(waitCtx, "4f1c", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}
