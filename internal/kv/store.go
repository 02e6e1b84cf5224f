// Package kv provides the small key-value store behind persisted client
// preferences (session token, cached profile, theme, currency).
//
// The store is injected wherever persistence is needed so that logic code
// never touches a global; tests use the in-memory implementation.
package kv

// Store is a durable string key-value store. Writes are last-write-wins.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)

	// Set stores a value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(key string) error

	// Close releases any resources held by the store.
	Close() error
}
