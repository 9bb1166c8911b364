// Package kv is the key-value storage boundary. Link records live behind it
// as opaque byte values; backends provide get/put/delete and prefix listing
// with whatever consistency the underlying store offers.
package kv

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// PutIfAbsent writes value only when key does not exist yet and reports
	// whether the write happened.
	PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Open picks a backend from a store URL: "redis://..." or "rediss://..." for
// Redis, "sqlite:<path>" or a bare path for SQLite.
func Open(ctx context.Context, rawURL string) (Store, error) {
	switch {
	case strings.HasPrefix(rawURL, "redis://"), strings.HasPrefix(rawURL, "rediss://"):
		return OpenRedis(ctx, rawURL)
	case strings.HasPrefix(rawURL, "sqlite:"):
		return OpenSQLite(strings.TrimPrefix(rawURL, "sqlite:"))
	default:
		return OpenSQLite(rawURL)
	}
}
