// Package metadata implements a key/value table over SQL. It is the storage
// behind the sqlite and postgres persistence backends; both satisfy
// account.Persister directly.
package metadata

import "context"

type Repository interface {
	// Get returns (nil, nil) when key has no row.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}
