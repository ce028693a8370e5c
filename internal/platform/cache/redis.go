package cache

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/football-tournament/internal/platform/resilience"
)

const redisScanBatch = 200

// RedisStore is a Store backed by redis. Calls go through a circuit breaker
// so an unreachable redis degrades to cache misses instead of slow requests.
type RedisStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
	breaker   *resilience.CircuitBreaker
}

type RedisOptions struct {
	URL            string
	Namespace      string
	TTL            time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	PingTimeout    time.Duration
}

func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	parsed, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "parse redis url")
	}

	client := redis.NewClient(parsed)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrapf(err, "ping redis at %s", parsed.Addr)
	}

	return NewRedisStoreFromClient(client, opts), nil
}

func NewRedisStoreFromClient(client *redis.Client, opts RedisOptions) *RedisStore {
	var breaker *resilience.CircuitBreaker
	if opts.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreaker(opts.CircuitBreaker)
	}
	return &RedisStore{
		client:    client,
		namespace: opts.Namespace,
		ttl:       opts.TTL,
		breaker:   breaker,
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := s.guard(func() error {
		raw, err := s.client.Get(ctx, s.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return crerr.Wrapf(err, "redis get %s", key)
		}
		value, found = raw, true
		return nil
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil, false, nil
	}
	return value, found, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.ignoreOpen(s.guard(func() error {
		if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
			return crerr.Wrapf(err, "redis set %s", key)
		}
		return nil
	}))
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, 0, len(keys))
	for _, key := range keys {
		namespaced = append(namespaced, s.key(key))
	}
	return s.guard(func() error {
		if err := s.client.Del(ctx, namespaced...).Err(); err != nil {
			return crerr.Wrap(err, "redis del")
		}
		return nil
	})
}

func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return nil
	}
	return s.guard(func() error {
		iter := s.client.Scan(ctx, 0, s.key(prefix)+"*", redisScanBatch).Iterator()
		batch := make([]string, 0, redisScanBatch)
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == redisScanBatch {
				if err := s.client.Del(ctx, batch...).Err(); err != nil {
					return crerr.Wrapf(err, "redis del prefix %s", prefix)
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return crerr.Wrapf(err, "redis scan prefix %s", prefix)
		}
		if len(batch) > 0 {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return crerr.Wrapf(err, "redis del prefix %s", prefix)
			}
		}
		return nil
	})
}

func (s *RedisStore) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

func (s *RedisStore) guard(fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	return s.breaker.Execute(fn)
}

// Writes skipped by an open breaker are not errors; the entry simply stays uncached.
func (s *RedisStore) ignoreOpen(err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil
	}
	return err
}
