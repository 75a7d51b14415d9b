package storage

import "errors"

var (
	ErrNotLoaded      = errors.New("storage not loaded")
	ErrNotInitialized = errors.New("storage not initialized, run 'arise init' first")
)

// Provider is a string key-value store. Values are opaque to the store;
// callers encode them as JSON or plain text.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// Keys returns every stored key in ascending order.
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
