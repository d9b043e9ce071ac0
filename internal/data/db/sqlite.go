package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/editais-backend/internal/platform/logger"
)

// OpenSQLite opens a file-backed (or ":memory:") database for local runs and tests.
func OpenSQLite(logg *logger.Logger, path string) (*gorm.DB, error) {
	if path == "" {
		path = "editais.db"
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	logg.With("service", "SQLiteService").Info("Opened SQLite database", "path", path)
	return db, nil
}
