package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ericogr/fight-tracker/internal/config"
	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/logging"
	"github.com/ericogr/fight-tracker/internal/tracker"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// Open selects the backend named by cfg.Driver, prepares its schema and
// returns a ready repository. The caller owns the result and must Close it.
func Open(ctx context.Context, cfg config.StorageConfig) (Repository, error) {
	logging.Info("opening storage", logging.Fields{constants.LogFieldDriver: cfg.Driver})
	switch cfg.Driver {
	case constants.DriverSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewSQLiteRepository(db), nil
	case constants.DriverPostgres:
		return OpenPostgres(ctx, cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// OpenSQLite opens the database file at path through the pure-Go driver and
// migrates the schema.
func OpenSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// One writer at a time keeps SQLITE_BUSY out of the request path.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&tracker.Fight{}, &tracker.InventoryItem{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}
