// Package kv defines the key-value port the persistence mirror writes
// through, plus its backends. The engine only ever needs flat string
// records, so every backend reduces to the same five operations.
package kv

import "context"

// Store is the key-value port. Implementations must be safe for use from
// multiple goroutines.
type Store interface {
	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// Get returns the value for key. The bool reports whether it existed.
	Get(ctx context.Context, key string) (string, bool, error)
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Entries returns a snapshot of every stored key/value pair.
	Entries(ctx context.Context) (map[string]string, error)
	// Clear removes every stored pair.
	Clear(ctx context.Context) error
}
