// Package kv provides the string-keyed durable store backing all
// application state. Store logic never touches a concrete backend, so the
// same stores run against an in-memory map in tests and postgres or redis
// in production.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound indicates no value exists under the requested key.
var ErrNotFound = errors.New("key not found")

// Store is a minimal key-value store. Values are opaque bytes; callers own
// the encoding.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Open builds the Store selected by backend ("memory", "postgres" or
// "redis") and returns it with a close function for the underlying
// connection, if any.
func Open(ctx context.Context, backend, dsn, redisAddr, namespace string) (Store, func(), error) {
	switch backend {
	case "", "memory":
		return NewMemory(), func() {}, nil
	case "postgres":
		store, err := NewPostgres(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres kv: %w", err)
		}
		return store, store.Close, nil
	case "redis":
		store, err := NewRedis(ctx, redisAddr, namespace)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis kv: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown kv backend %q", backend)
	}
}
