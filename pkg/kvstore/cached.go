package kvstore

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cached is a read-through decorator over Store.
//
// Only keys accepted by the cacheable predicate are kept in memory, and only
// values that were found. A cached value may outlive its expiration in the
// backing store by at most the cache ttl. Members are never cached since sets
// grow on every write.
type Cached struct {
	next      Store
	lru       *expirable.LRU[string, []byte]
	cacheable func(key string) bool
}

// NewCached wraps next. A nil cacheable caches nothing.
func NewCached(next Store, size int, ttl time.Duration, cacheable func(key string) bool) *Cached {
	if size <= 0 {
		size = 1024
	}
	if cacheable == nil {
		cacheable = func(string) bool { return false }
	}
	return &Cached{
		next:      next,
		lru:       expirable.NewLRU[string, []byte](size, nil, ttl),
		cacheable: cacheable,
	}
}

// PrefixCacheable accepts keys starting with any of prefixes.
func PrefixCacheable(prefixes ...string) func(string) bool {
	return func(key string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				return true
			}
		}
		return false
	}
}

func (c *Cached) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.next.Set(ctx, key, value, ttl); err != nil {
		c.lru.Remove(key)
		return err
	}
	if c.cacheable(key) {
		c.lru.Add(key, value)
	}
	return nil
}

func (c *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.cacheable(key) {
		return c.next.Get(ctx, key)
	}
	if val, ok := c.lru.Get(key); ok {
		return val, nil
	}
	val, err := c.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, val)
	return val, nil
}

func (c *Cached) AddToSet(ctx context.Context, key, member string, ttl time.Duration) error {
	return c.next.AddToSet(ctx, key, member, ttl)
}

func (c *Cached) Members(ctx context.Context, key string) ([]string, error) {
	return c.next.Members(ctx, key)
}
