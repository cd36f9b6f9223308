package persistence

import (
	"context"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/account"
)

// Timeout bounds every call to the wrapped persister by d.
type Timeout struct {
	inner account.Persister
	d     time.Duration
}

func WithTimeout(inner account.Persister, d time.Duration) *Timeout {
	return &Timeout{inner: inner, d: d}
}

func (t *Timeout) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Get(ctx, key)
}

func (t *Timeout) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Set(ctx, key, value)
}
