// Package storage provides the key-value record store the rest of the
// application persists through. Values are JSON blobs keyed by feature
// area; there is no atomicity across keys and no schema beyond "value
// is JSON text". Read-modify-write cycles are bare sequences, so
// concurrent writers to the same key can lose updates; at single-user
// volumes that trade-off is accepted.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been set.
var ErrNotFound = errors.New("key not found")

// KV is the record store capability: JSON blobs under string keys.
type KV interface {
	// Get returns the JSON value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases any underlying resources.
	Close() error
}
