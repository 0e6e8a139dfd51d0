// Package storage persists cart snapshots under a fixed, well-known key.
//
// A snapshot is a best-effort cache, not a source of truth: the in-memory
// cart stays authoritative for the session and the backend re-prices at
// checkout. There is exactly one writer per key (the owning app instance),
// so every Save is a plain last-writer-wins overwrite.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no snapshot has been written yet.
var ErrNotFound = errors.New("storage: snapshot not found")

type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
