// Package kvstore is the narrow key-value contract the progress log and the
// access ledger are written against.
package kvstore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	// Stores value under key. Zero ttl means no expiration
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Reads key. Returns ErrNotFound for absent or expired keys
	Get(ctx context.Context, key string) ([]byte, error)
	// Adds member to the set under key and refreshes the set's ttl
	AddToSet(ctx context.Context, key, member string, ttl time.Duration) error
	// Lists members of the set under key. Absent set gives an empty slice
	Members(ctx context.Context, key string) ([]string, error)
}
