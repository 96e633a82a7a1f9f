// Package metadata is the key/value table of the local client store.
//
// It backs the durable client state: the session credential and the
// duplicate-registration hint.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// DeleteKeys removes all given keys in one transaction.
	DeleteKeys(ctx context.Context, keys ...string) error
}
