package metadata

import (
	"context"
)

// Repository is the singleton key/value ledger of the local store. It holds
// client-side bookkeeping such as the legacy-migration completion flag.
type Repository interface {
	// Get returns the value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
