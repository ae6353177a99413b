package store

import "context"

// Store is the local key-value persistence used for client preferences.
// Values are opaque strings; callers own their encoding.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been set or was deleted.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key and notifies the key's subscribers.
	Set(ctx context.Context, key, value string) error

	// Delete removes key and notifies its subscribers with "".
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Subscribe registers fn for changes to key and returns a function
	// that removes it.
	Subscribe(key string, fn func(value string)) (unsubscribe func())

	Close() error
}
