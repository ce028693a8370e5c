package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

// Cache layers JSON encoding and load deduplication over a Store.
// Backend failures are logged and treated as misses.
//
// Every invalidation bumps generation. A load that overlaps an invalidation
// returns its result without storing it, so a slow read cannot put rows
// older than the latest write back into the store.
type Cache struct {
	store  Store
	flight singleflight.Group
	logger *logging.Logger

	mu         sync.RWMutex
	generation uint64
}

func New(store Store, logger *logging.Logger) *Cache {
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{store: store, logger: logger}
}

// GetOrLoad returns the cached value for key or runs load once across
// concurrent callers and caches its result.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if load == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if c == nil || c.store == nil || key == "" {
		return load(ctx)
	}

	if value, ok := lookup[T](ctx, c, key); ok {
		return value, nil
	}

	gen := c.currentGeneration()
	raw, err, _ := c.flight.Do(strconv.FormatUint(gen, 10)+":"+key, func() (any, error) {
		if cached, ok := lookup[T](ctx, c, key); ok {
			return cached, nil
		}

		loaded, loadErr := load(ctx)
		if loadErr != nil {
			return zero, loadErr
		}
		c.putIfCurrent(ctx, gen, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("cache value for %s has unexpected type %T", key, raw)
	}
	return value, nil
}

// Invalidate drops the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.store == nil || len(keys) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if err := c.store.Delete(ctx, keys...); err != nil {
		c.logger.WarnContext(ctx, "cache invalidate failed", "keys", keys, "error", err)
	}
}

// InvalidatePrefix drops every key starting with prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil || c.store == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if err := c.store.DeletePrefix(ctx, prefix); err != nil {
		c.logger.WarnContext(ctx, "cache invalidate prefix failed", "prefix", prefix, "error", err)
	}
}

func lookup[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var value T
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		return value, false
	}
	if !ok {
		return value, false
	}
	if err := sonic.Unmarshal(raw, &value); err != nil {
		c.logger.WarnContext(ctx, "cache decode failed", "key", key, "error", err)
		return value, false
	}
	return value, true
}

func (c *Cache) currentGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// putIfCurrent stores value unless an invalidation happened after gen was
// read. The read lock keeps the check and the write atomic with respect to
// invalidations.
func (c *Cache) putIfCurrent(ctx context.Context, gen uint64, key string, value any) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.generation != gen {
		return
	}
	c.put(ctx, key, value)
}

func (c *Cache) put(ctx context.Context, key string, value any) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, raw); err != nil {
		c.logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
}
