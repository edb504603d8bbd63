package watchlist

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoStore keeps one document per owner, keyed by _id, in a single
// collection. Compare-and-swap rides on the version field in the
// replace filter.
type MongoStore struct {
	Collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{Collection: db.Collection("watchlists")}
}

func (s *MongoStore) Fetch(ctx context.Context, ownerID string) (Document, error) {
	var doc Document
	err := s.Collection.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Document{}, ErrNoDocument
		}
		return Document{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return doc, nil
}

func (s *MongoStore) Replace(ctx context.Context, ownerID string, entries []Entry, expectedVersion uint64) (Document, error) {
	if entries == nil {
		entries = []Entry{}
	}
	next := Document{OwnerID: ownerID, Entries: entries, Version: expectedVersion + 1}

	if expectedVersion == 0 {
		if _, err := s.Collection.InsertOne(ctx, next); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return Document{}, ErrConflict
			}
			return Document{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return next, nil
	}

	res, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": ownerID, "version": expectedVersion}, next)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return Document{}, ErrConflict
	}
	return next, nil
}
