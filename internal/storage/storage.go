// Package storage holds the named JSON slots the booking services persist to.
// A slot is an opaque byte value under a string key, the same shape the
// browser front end kept in local storage.
package storage

import "context"

const (
	KeyUsers        = "users"
	KeySession      = "currentUser"
	KeyAppointments = "appointments"
)

// Slots is a durable key-value store of whole JSON documents.
// Get returns nil, nil for a slot that was never written or was deleted.
type Slots interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
