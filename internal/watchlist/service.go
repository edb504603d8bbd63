package watchlist

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
)

// Service applies one logical watchlist mutation end to end: fetch the
// owner's document, transform the entries in memory, persist the result with
// a single versioned replace. A concurrent writer makes the replace fail
// with ErrConflict; the caller retries with fresh state, nothing is merged.
type Service struct {
	Store Store

	// Now stamps AddedAt on new entries. Left nil, time.Now is used.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// fetchOrEmpty treats a missing document as an empty one at version 0, which
// makes the follow-up Replace a create.
func (s *Service) fetchOrEmpty(ctx context.Context, ownerID string) (Document, error) {
	doc, err := s.Store.Fetch(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNoDocument) {
			return Document{OwnerID: ownerID}, nil
		}
		return Document{}, err
	}
	return doc, nil
}

// Add appends movie to the owner's watchlist. The id must not already be
// present; AddedAt is stamped here and never changes afterwards.
func (s *Service) Add(ctx context.Context, ownerID string, movie MovieInput) (Entry, error) {
	if movie.ID <= 0 || strings.TrimSpace(movie.Title) == "" {
		return Entry{}, errors.New("movie id and title required")
	}

	doc, err := s.fetchOrEmpty(ctx, ownerID)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range doc.Entries {
		if e.ID == movie.ID {
			return Entry{}, ErrDuplicateEntry
		}
	}

	entry := Entry{
		ID:          movie.ID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		VoteAverage: movie.VoteAverage,
		Overview:    movie.Overview,
		AddedAt:     s.now(),
	}

	if _, err := s.Store.Replace(ctx, ownerID, append(doc.Entries, entry), doc.Version); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Remove drops movieID from the owner's watchlist and returns the remaining
// entries. The document itself stays, even when emptied.
func (s *Service) Remove(ctx context.Context, ownerID string, movieID int64) ([]Entry, error) {
	doc, err := s.Store.Fetch(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNoDocument) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	kept := make([]Entry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		if e.ID != movieID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(doc.Entries) {
		return nil, ErrEntryNotFound
	}

	updated, err := s.Store.Replace(ctx, ownerID, kept, doc.Version)
	if err != nil {
		return nil, err
	}
	return updated.Entries, nil
}

// EditNote sets the note on one entry. An empty note is a real value,
// distinct from an entry whose note was never set.
func (s *Service) EditNote(ctx context.Context, ownerID string, movieID int64, note string) (Entry, error) {
	doc, err := s.Store.Fetch(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNoDocument) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}

	idx := -1
	for i, e := range doc.Entries {
		if e.ID == movieID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Entry{}, ErrEntryNotFound
	}

	entries := slices.Clone(doc.Entries)
	entries[idx].UserNotes = &note

	if _, err := s.Store.Replace(ctx, ownerID, entries, doc.Version); err != nil {
		return Entry{}, err
	}
	return entries[idx], nil
}

// List returns the owner's entries, most recently added first. The sort is a
// read-time projection; persisted order stays insertion order.
func (s *Service) List(ctx context.Context, ownerID string) ([]Entry, error) {
	doc, err := s.Store.Fetch(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNoDocument) {
			return []Entry{}, nil
		}
		return nil, err
	}

	out := slices.Clone(doc.Entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return b.AddedAt.Compare(a.AddedAt)
	})
	return out, nil
}
