package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is a durable key-value store. Get returns ErrNotFound for a key that
// was never written or has expired.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
