package localstore

import (
	"context"
)

// Repository is the durable key/value port used by the session and the guest
// cart. Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// DeleteKeys removes every key in one step: either all are gone
	// afterwards or none is.
	DeleteKeys(ctx context.Context, keys ...string) error
}
