// Package kvstore holds the raw key-value layer: one JSON document per key.
package kvstore

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned for empty keys or keys containing path separators
var ErrInvalidKey = errors.New("invalid store key")

// Store is a string-keyed document store. A missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Locker provides advisory locks keyed by name
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

func validKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	for _, r := range key {
		if r == '/' || r == '\\' || r == 0 {
			return ErrInvalidKey
		}
	}
	return nil
}
