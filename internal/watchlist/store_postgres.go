package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DocumentRecord is the gorm row backing one watchlist document. Entries are
// stored as a single jsonb value so a replace is genuinely one whole-document
// overwrite.
type DocumentRecord struct {
	OwnerID   string          `gorm:"primaryKey;column:owner_id;type:uuid"`
	Entries   json.RawMessage `gorm:"type:jsonb;not null;default:'[]'::jsonb"`
	Version   uint64          `gorm:"not null;default:1"`
	UpdatedAt time.Time       `gorm:"not null;default:now()"`
}

func (DocumentRecord) TableName() string { return "watchlist_documents" }

type PostgresStore struct {
	DB *gorm.DB
}

func (s *PostgresStore) Fetch(ctx context.Context, ownerID string) (Document, error) {
	var rec DocumentRecord
	err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Document{}, ErrNoDocument
		}
		return Document{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	var entries []Entry
	if err := json.Unmarshal(rec.Entries, &entries); err != nil {
		return Document{}, fmt.Errorf("%w: corrupt entries for %s: %v", ErrStorageUnavailable, ownerID, err)
	}
	return Document{OwnerID: ownerID, Entries: entries, Version: rec.Version}, nil
}

func (s *PostgresStore) Replace(ctx context.Context, ownerID string, entries []Entry, expectedVersion uint64) (Document, error) {
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return Document{}, fmt.Errorf("marshal entries: %w", err)
	}

	db := s.DB.WithContext(ctx)

	if expectedVersion == 0 {
		rec := DocumentRecord{
			OwnerID:   ownerID,
			Entries:   raw,
			Version:   1,
			UpdatedAt: time.Now(),
		}
		if err := db.Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Document{}, ErrConflict
			}
			return Document{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return Document{OwnerID: ownerID, Entries: entries, Version: 1}, nil
	}

	res := db.Model(&DocumentRecord{}).
		Where("owner_id = ? AND version = ?", ownerID, expectedVersion).
		Updates(map[string]any{
			"entries":    raw,
			"version":    expectedVersion + 1,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, res.Error)
	}
	// Documents are never deleted, so zero rows means the version moved.
	if res.RowsAffected == 0 {
		return Document{}, ErrConflict
	}
	return Document{OwnerID: ownerID, Entries: entries, Version: expectedVersion + 1}, nil
}
