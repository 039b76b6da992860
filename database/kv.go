package database

import (
	"context"
	"errors"
)

// Storage keys. Writes replace the value under a key wholesale; reads of a
// missing key surface ErrKeyNotFound and callers substitute the empty
// default for the slot.
const (
	KeyCurrentUser = "currentUser"
	KeyUsers       = "users"
	KeyCart        = "cart"
	KeyOrders      = "orders"
)

var ErrKeyNotFound = errors.New("key not found")

// KVStore is the persistent string-keyed store holding all session state.
// Values are JSON text. The store is a single shared resource with
// last-writer-wins semantics; every repository does a full read-modify-write
// per operation and concurrent sessions are not reconciled.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
