package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

type snapshot struct {
	Names []string `json:"names"`
}

func TestLeaderboardCache(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	cache := NewLeaderboardCache(rdb)

	gen, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	var got snapshot
	hit, err := cache.Get(ctx, gen, "course=c1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, gen, "course=c1", snapshot{Names: []string{"Ana", "Bo"}}, time.Minute))

	hit, err = cache.Get(ctx, gen, "course=c1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"Ana", "Bo"}, got.Names)

	hit, err = cache.Get(ctx, gen, "course=c2", &got)
	require.NoError(t, err)
	assert.False(t, hit, "filters are cached separately")

	require.NoError(t, cache.Invalidate(ctx))
	gen, err = cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	hit, err = cache.Get(ctx, gen, "course=c1", &got)
	require.NoError(t, err)
	assert.False(t, hit, "a new generation hides old snapshots")

	require.NoError(t, cache.Set(ctx, gen, "course=c1", snapshot{Names: []string{"Cy"}}, time.Minute))
	mr.FastForward(2 * time.Minute)
	hit, err = cache.Get(ctx, gen, "course=c1", &got)
	require.NoError(t, err)
	assert.False(t, hit, "snapshots expire")
}

func TestLeaderboardCacheSnapshotRacingAnInvalidation(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	cache := NewLeaderboardCache(rdb)

	// 读取代数后、写入快照前有新结果入库
	before, err := cache.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx))
	require.NoError(t, cache.Set(ctx, before, "course=c1", snapshot{Names: []string{"stale"}}, time.Minute))

	current, err := cache.Generation(ctx)
	require.NoError(t, err)
	var got snapshot
	hit, err := cache.Get(ctx, current, "course=c1", &got)
	require.NoError(t, err)
	assert.False(t, hit, "a snapshot built before the invalidation is never served")
}

func TestSubmissionLock(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	lock := NewSubmissionLock(rdb)

	token, ok, err := lock.Acquire(ctx, "u1", "t1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = lock.Acquire(ctx, "u1", "t1", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "held lock rejects an overlapping submission")

	_, ok, err = lock.Acquire(ctx, "u2", "t1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "other learners are independent")

	released, err := lock.Release(ctx, "u1", "t1", token)
	require.NoError(t, err)
	assert.True(t, released)
	_, ok, err = lock.Acquire(ctx, "u1", "t1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(time.Minute)
	_, ok, err = lock.Acquire(ctx, "u1", "t1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "a crashed holder does not block forever")
}

func TestSubmissionLockReleaseKeepsAnotherHoldersLock(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	lock := NewSubmissionLock(rdb)
	key := submissionLockKey("u1", "t1")

	slow, ok, err := lock.Acquire(ctx, "u1", "t1", 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// 慢请求超时，另一个请求拿到锁
	mr.FastForward(time.Minute)
	next, ok, err := lock.Acquire(ctx, "u1", "t1", 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	released, err := lock.Release(ctx, "u1", "t1", slow)
	require.NoError(t, err)
	assert.False(t, released)
	assert.True(t, mr.Exists(key), "an expired holder cannot delete the new lock")

	released, err = lock.Release(ctx, "u1", "t1", next)
	require.NoError(t, err)
	assert.True(t, released)
	assert.False(t, mr.Exists(key))
}
