// Package storage provides abstractions for persistent data storage.
package storage

import "context"

// Backend is the key-value contract used to persist ledger snapshots.
// This abstraction allows swapping storage backends (memory, SQLite,
// PostgreSQL) without changing the ledger.
type Backend interface {
	// Get returns the value stored under key.
	// ok is false when the key is absent; that is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Timestamped is implemented by backends that record when each key was last
// written.
type Timestamped interface {
	// UpdatedAt returns the Unix time key was last written.
	UpdatedAt(ctx context.Context, key string) (int64, error)
}
