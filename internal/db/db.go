package db

import (
	"reelist/internal/auth"
	"reelist/internal/watchlist"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError lets stores match gorm.ErrDuplicatedKey on unique
	// violations instead of sniffing pq error codes.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&auth.User{},
		&watchlist.DocumentRecord{},
	); err != nil {
		return err
	}

	// Entry lookups inside a document happen in memory; the only access
	// path is the owner_id primary key, so no extra indexes are needed.
	return nil
}
