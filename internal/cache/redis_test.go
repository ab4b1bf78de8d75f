package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCacheAside_FetchesOnceThenHits(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	fetch := func(dst *[]string) func() error {
		return func() error {
			calls++
			*dst = []string{"a", "b"}
			return nil
		}
	}

	var first []string
	require.NoError(t, c.CacheAside(ctx, "k", &first, time.Minute, fetch(&first)))
	var second []string
	require.NoError(t, c.CacheAside(ctx, "k", &second, time.Minute, fetch(&second)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"a", "b"}, second)
}

func TestCacheAside_ExpiryAndDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", 42, time.Second))
	mr.FastForward(2 * time.Second)
	var n int
	found, err := c.GetJSON(ctx, "k", &n)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SetJSON(ctx, "k", 42, time.Minute))
	require.NoError(t, c.Delete(ctx, "k", "missing"))
	found, err = c.GetJSON(ctx, "k", &n)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheAside_FetchErrorNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")

	var dst []string
	err := c.CacheAside(context.Background(), "k", &dst, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("brainhints:k"))
}

func TestNilCache(t *testing.T) {
	var c *Cache
	ctx := context.Background()
	calls := 0
	var dst int
	require.NoError(t, c.CacheAside(ctx, "k", &dst, time.Minute, func() error { calls++; dst = 7; return nil }))
	require.NoError(t, c.CacheAside(ctx, "k", &dst, time.Minute, func() error { calls++; return nil }))
	assert.Equal(t, 2, calls)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Close())
}
