package keyvalue

import (
	"context"
)

type Repository interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete removes keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// Replace removes the keys in remove and writes set as one atomic unit.
	Replace(ctx context.Context, remove []string, set map[string]string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
