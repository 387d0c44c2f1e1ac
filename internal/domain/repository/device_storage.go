// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"github.com/pkg/errors"
)

// ErrStorageKeyNotFound is returned by GetItem when nothing is stored under the key.
var ErrStorageKeyNotFound = errors.New("storage key not found")

// DeviceStorage is a string key-value store that survives restarts. Values
// are opaque strings; callers decide the encoding.
type DeviceStorage interface {
	// GetItem returns the value stored under key or ErrStorageKeyNotFound.
	GetItem(ctx context.Context, key string) (string, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItems deletes the given keys. Missing keys are not an error.
	RemoveItems(ctx context.Context, keys ...string) error

	// Close releases the underlying driver.
	Close() error
}

// StorageWriter serialises writes to a DeviceStorage in the order they are
// requested without making callers wait for them.
type StorageWriter interface {
	// Set schedules a write of value under key.
	Set(key, value string)

	// Remove schedules the removal of keys.
	Remove(keys ...string)

	// Flush blocks until every write scheduled before the call is done.
	Flush(ctx context.Context) error
}
