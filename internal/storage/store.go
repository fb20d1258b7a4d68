// Package storage defines the key-value abstraction used to hand batch
// results to whatever owns persistence. The extraction core is
// storage-agnostic: it writes through this interface and never manages
// eviction or durability itself.
package storage

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a minimal key-value store for serialized job results.
type Store interface {
	// Put stores a value under a key, replacing any previous value.
	Put(key string, value []byte) error

	// Get returns the value stored under a key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(key string) error
}
