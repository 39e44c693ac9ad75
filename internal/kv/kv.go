// Package kv is the key-value layer the session store persists into.
package kv

import "context"

// Store is a string-keyed byte store. Get returns nil, nil for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Lister is implemented by stores that can enumerate keys.
type Lister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}
