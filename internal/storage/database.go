package storage

import (
	"os"
	"path/filepath"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database at the given path, creating
// the parent directory when needed, and keeps the schema updated via
// AutoMigrate.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if dir := filepath.Dir(dataSourceName); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&game.Profile{}, &game.BattleRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}
