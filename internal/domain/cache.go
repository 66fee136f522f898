package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss is returned when a key is not found in the cache.
	ErrCacheMiss = CacheError("cache: key not found")

	// ErrCacheConflict is returned when HUpdate keeps losing to concurrent
	// writers.
	ErrCacheConflict = CacheError("cache: too many concurrent updates")
)

// Cache is the port the services use for Redis. Adapters translate their
// own "not found" sentinel into ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites key. A zero expiration keeps the key forever.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, keys ...string) error

	Exists(ctx context.Context, key string) (bool, error)

	Ping(ctx context.Context) error

	// HUpdate runs a read-modify-write on the hash at key as one optimistic
	// transaction. fn gets the current fields (nil when the hash is missing)
	// and returns the fields to write, or nil to leave the hash untouched.
	// fn may run more than once when another writer changes key meanwhile.
	// A write also refreshes the key's TTL.
	HUpdate(ctx context.Context, key string, expiration time.Duration, fn func(current map[string]string) (map[string]string, error)) error
}
