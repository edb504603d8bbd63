package watchlist

import (
	"context"
	"errors"
)

var (
	// ErrNoDocument is returned by Fetch when the owner has no document yet.
	ErrNoDocument = errors.New("watchlist document not found")

	// ErrConflict is returned by Replace when the document version changed
	// between the caller's fetch and its write.
	ErrConflict = errors.New("watchlist version conflict")

	// ErrStorageUnavailable wraps connectivity and permission failures from
	// the underlying document store.
	ErrStorageUnavailable = errors.New("watchlist storage unavailable")

	ErrDuplicateEntry = errors.New("movie already in watchlist")
	ErrEntryNotFound  = errors.New("movie not in watchlist")
)

// Store reads and writes one watchlist document per owner. Replace is a
// whole-document overwrite with upsert semantics: expectedVersion 0 means
// "create, the document must not exist yet"; any other value must match the
// stored version or the write fails with ErrConflict.
type Store interface {
	Fetch(ctx context.Context, ownerID string) (Document, error)
	Replace(ctx context.Context, ownerID string, entries []Entry, expectedVersion uint64) (Document, error)
}
