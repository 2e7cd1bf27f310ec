// Package store provides keyed persistence for dashboard layouts.
//
// A Store is a byte-oriented key-value backend. The engine persists one
// value per category (the whole set of per-tier layouts, serialized as
// JSON); every write is a full overwrite, so stores need no transactions and
// no partial updates. Implementations:
//
//   - MemoryStore: in-process map, for tests and single-session use
//   - FileStore: JSON envelope files under a hash-distributed directory
//   - RedisStore: shared persistence for multi-instance deployments
//   - MongoStore: durable document storage
//   - NullStore: persistence disabled
//
// Store failures are expected to be handled fail-open by callers: a read
// error is a miss, a dropped write is retried by the next save.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("store closed")

// Store is the interface for layout persistence backends.
type Store interface {
	// Get retrieves the value for a key.
	// The second return is false when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value, replacing any existing one.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKey returns the store key for a category's layouts.
func LayoutKey(category string) string {
	return "layouts:" + category
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
