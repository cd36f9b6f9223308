package account

import "context"

// DefaultKey is the identifier the state document is stored under.
const DefaultKey = "app"

// Persister stores the serialized state between sessions.
//
// Get must return (nil, nil) when nothing has been stored under key.
type Persister interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
