package kvstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	errorvalues "github.com/limbo/sovet/internal/error_values"
	"github.com/limbo/sovet/pkg/kvstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*miniredis.Miniredis, *kvstore.Redis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, kvstore.NewRedisWithClient(client)
}

func TestRedisSetGet(t *testing.T) {
	mr, store := newRedisStore(t)
	ctx := context.Background()

	t.Run("stored value is returned", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "log:1", []byte(`{"a":1}`), time.Hour))
		val, err := store.Get(ctx, "log:1")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(val))
		assert.Equal(t, time.Hour, mr.TTL("log:1"))
	})
	t.Run("absent key", func(t *testing.T) {
		_, err := store.Get(ctx, "log:absent")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})
	t.Run("expired key", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "log:2", []byte("x"), time.Minute))
		mr.FastForward(2 * time.Minute)
		_, err := store.Get(ctx, "log:2")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})
}

func TestRedisSets(t *testing.T) {
	mr, store := newRedisStore(t)
	ctx := context.Background()

	members, err := store.Members(ctx, "user:u:logs")
	require.NoError(t, err)
	assert.Empty(t, members)

	require.NoError(t, store.AddToSet(ctx, "user:u:logs", "a", 24*time.Hour))
	require.NoError(t, store.AddToSet(ctx, "user:u:logs", "b", 24*time.Hour))
	require.NoError(t, store.AddToSet(ctx, "user:u:logs", "a", 24*time.Hour))

	members, err = store.Members(ctx, "user:u:logs")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, members)
	assert.Equal(t, 24*time.Hour, mr.TTL("user:u:logs"))
}

func TestRedisUnavailable(t *testing.T) {
	mr, store := newRedisStore(t)
	ctx := context.Background()
	mr.Close()

	err := store.Set(ctx, "k", []byte("v"), 0)
	assert.ErrorIs(t, err, errorvalues.ErrStoreUnavailable)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, errorvalues.ErrStoreUnavailable)
	err = store.AddToSet(ctx, "s", "m", 0)
	assert.ErrorIs(t, err, errorvalues.ErrStoreUnavailable)
	_, err = store.Members(ctx, "s")
	assert.ErrorIs(t, err, errorvalues.ErrStoreUnavailable)
}

type countingStore struct {
	kvstore.Store
	gets int
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	return c.Store.Get(ctx, key)
}

func TestCachedReadThrough(t *testing.T) {
	_, backing := newRedisStore(t)
	counting := &countingStore{Store: backing}
	store := kvstore.NewCached(counting, 16, time.Minute, kvstore.PrefixCacheable("log:"))
	ctx := context.Background()

	require.NoError(t, backing.Set(ctx, "log:1", []byte("one"), 0))
	require.NoError(t, backing.Set(ctx, "user:1:access", []byte("granted"), 0))

	t.Run("cacheable key is read once", func(t *testing.T) {
		for range 3 {
			val, err := store.Get(ctx, "log:1")
			require.NoError(t, err)
			assert.Equal(t, "one", string(val))
		}
		assert.Equal(t, 1, counting.gets)
	})
	t.Run("other keys always hit the store", func(t *testing.T) {
		counting.gets = 0
		for range 2 {
			_, err := store.Get(ctx, "user:1:access")
			require.NoError(t, err)
		}
		assert.Equal(t, 2, counting.gets)
	})
	t.Run("misses are not cached", func(t *testing.T) {
		counting.gets = 0
		_, err := store.Get(ctx, "log:2")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
		require.NoError(t, store.Set(ctx, "log:2", []byte("two"), 0))
		val, err := store.Get(ctx, "log:2")
		require.NoError(t, err)
		assert.Equal(t, "two", string(val))
		assert.Equal(t, 1, counting.gets)
	})
	t.Run("sets pass through", func(t *testing.T) {
		require.NoError(t, store.AddToSet(ctx, "user:1:logs", "1", 0))
		members, err := store.Members(ctx, "user:1:logs")
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, members)
	})
}

func TestCachedWithoutPredicate(t *testing.T) {
	_, backing := newRedisStore(t)
	counting := &countingStore{Store: backing}
	store := kvstore.NewCached(counting, 0, time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "log:1", []byte("one"), 0))
	for range 2 {
		val, err := store.Get(ctx, "log:1")
		require.NoError(t, err)
		assert.Equal(t, "one", string(val))
	}
	assert.Equal(t, 2, counting.gets)
}
