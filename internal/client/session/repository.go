// Package session owns the authenticated-user record: an in-memory store
// with change notification, written through to a durable key/value
// repository so the session survives restarts.
package session

import "context"

// Repository is the durable side of the store. Implementations persist small
// opaque values by key; the store keeps the whole session under one key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
