// Package storage provides the durable key-value facility the record store
// persists into: a file-backed backend for real use and a map-backed backend
// for tests and environments without a writable filesystem.
package storage

import "errors"

// ErrKeyNotFound is returned by Delete when the key has never been written.
var ErrKeyNotFound = errors.New("storage: key not found")

// Backend is a minimal durable key-value store. Implementations must make a
// completed Put fully visible to the next Get (no partial documents).
type Backend interface {
	// Get returns the stored bytes for key. The second return value reports
	// whether the key exists at all.
	Get(key string) ([]byte, bool, error)

	// Put replaces the value stored under key wholesale.
	Put(key string, data []byte) error

	// Delete removes the key and its value.
	Delete(key string) error
}

// Open returns a file backend rooted at dir. When the directory cannot be
// created or written, it degrades to an in-memory backend so the caller keeps
// a working store for the lifetime of the process; the error describes why
// durability was lost.
func Open(dir string) (Backend, error) {
	fb, err := NewFileBackend(dir)
	if err != nil {
		return NewMemoryBackend(), err
	}
	return fb, nil
}
