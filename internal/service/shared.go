package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medqbank/internal/domain"
	"medqbank/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// sharedLoadTimeout bounds a deduplicated load, which runs detached from the
// request that started it so one client disconnecting doesn't fail the
// others waiting on the same key.
const sharedLoadTimeout = 10 * time.Second

// loadShared runs fn once per key across concurrent callers. Each caller
// stops waiting as soon as its own ctx is done.
func loadShared[T any](ctx context.Context, group *singleflight.Group, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	ch := group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()
		return fn(loadCtx)
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("unexpected type from singleflight for %s: %T", key, res.Val)
		}
		return v, nil
	}
}

// getCachedJSON decodes key into dst. It reports false on a miss, a cache
// failure or a corrupt entry; the last two are logged and treated as misses.
func getCachedJSON(ctx context.Context, cache domain.Cache, key string, dst interface{}) bool {
	if cache == nil {
		return false
	}
	raw, err := cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Get().Warn("Discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// setCachedJSON stores value under key. Failures are logged, never returned.
func setCachedJSON(ctx context.Context, cache domain.Cache, key string, value interface{}, ttl time.Duration) {
	if cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Get().Error("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := cache.Set(ctx, key, string(data), ttl); err != nil {
		logger.Get().Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
