package watchlist

import "time"

// Entry is one saved movie in a user's watchlist.
//
// UserNotes distinguishes "never set" (nil) from an explicitly cleared
// note (pointer to ""); both survive a marshal round trip.
type Entry struct {
	ID          int64     `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	PosterPath  string    `json:"posterPath,omitempty" bson:"poster_path,omitempty"`
	ReleaseDate string    `json:"releaseDate" bson:"release_date"`
	VoteAverage float64   `json:"voteAverage" bson:"vote_average"`
	Overview    string    `json:"overview" bson:"overview"`
	AddedAt     time.Time `json:"addedAt" bson:"added_at"`
	UserNotes   *string   `json:"userNotes,omitempty" bson:"user_notes,omitempty"`
}

// Document is the whole per-owner watchlist. Entries keep insertion order;
// display order (added-at descending) is applied at read time by List.
// Version increments on every replace and backs the optimistic
// compare-and-swap in the stores.
type Document struct {
	OwnerID string  `bson:"_id"`
	Entries []Entry `bson:"entries"`
	Version uint64  `bson:"version"`
}

// MovieInput is the validated movie shape accepted by Add. Field names
// follow the catalog API wire format.
type MovieInput struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}
