package adapter

import (
	"context"
	"errors"
	"sort"
	"time"

	"medqbank/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCacheAdapter implements the domain.Cache interface using a Redis client.
type RedisCacheAdapter struct {
	client *redis.Client
}

// NewRedisCacheAdapter creates a new instance of RedisCacheAdapter.
// It expects a connected *redis.Client.
func NewRedisCacheAdapter(client *redis.Client) domain.Cache {
	return &RedisCacheAdapter{client: client}
}

// Get translates redis.Nil to domain.ErrCacheMiss.
func (r *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

// Set adds an item to the Redis cache. A zero expiration keeps it forever.
func (r *RedisCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Delete removes items from the Redis cache. Missing keys are ignored.
func (r *RedisCacheAdapter) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Exists reports whether key is present in the Redis cache.
func (r *RedisCacheAdapter) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ping checks the health of the Redis server.
func (r *RedisCacheAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// maxUpdateAttempts bounds HUpdate retries after a lost WATCH.
const maxUpdateAttempts = 5

// HUpdate watches key, reads the hash, and writes fn's result in a MULTI
// block. EXEC fails when key changed after the WATCH; the whole cycle is
// then retried.
func (r *RedisCacheAdapter) HUpdate(ctx context.Context, key string, expiration time.Duration, fn func(current map[string]string) (map[string]string, error)) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.HGetAll(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if len(current) == 0 {
			current = nil
		}

		fields, err := fn(current)
		if err != nil || len(fields) == 0 {
			return err
		}

		values := hashValues(fields)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, values...)
			if expiration > 0 {
				pipe.Expire(ctx, key, expiration)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return domain.ErrCacheConflict
}

// hashValues flattens fields into HSET arguments in key order.
func hashValues(fields map[string]string) []interface{} {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]interface{}, 0, len(fields)*2)
	for _, name := range names {
		values = append(values, name, fields[name])
	}
	return values
}
