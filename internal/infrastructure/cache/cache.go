package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the value for a key on a cache miss
type LoadFunc func(ctx context.Context) (interface{}, error)

// Cache is an in-memory cache with expiration. Concurrent misses for the same
// key share a single load, and a Delete that races with a load keeps the
// loaded value from being stored.
type Cache struct {
	items *gocache.Cache
	group singleflight.Group

	mu       sync.Mutex
	versions map[string]uint64
}

// New creates a cache whose entries expire after ttl
func New(ttl time.Duration) *Cache {
	return &Cache{
		items:    gocache.New(ttl, 2*ttl),
		versions: make(map[string]uint64),
	}
}

// Get retrieves an item from the cache
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.items.Get(key)
}

// GetOrLoad returns the cached value or loads, stores and returns it
func (c *Cache) GetOrLoad(ctx context.Context, key string, load LoadFunc) (interface{}, error) {
	if v, ok := c.items.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		version := c.version(key)
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.versions[key] == version {
			c.items.SetDefault(key, v)
		}
		c.mu.Unlock()
		return v, nil
	})
	return v, err
}

// Delete removes an item and discards any load already in flight for it
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	c.versions[key]++
	c.items.Delete(key)
	c.mu.Unlock()
	c.group.Forget(key)
}

func (c *Cache) version(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key]
}
