package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"moments/internal/config"
	"moments/internal/models/db_models"
)

// OpenDatabase connects to the relational backend named by cfg.StorageDriver
// and migrates the activity table.
func OpenDatabase(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("POSTGRES_URL is required for storage driver %q", cfg.StorageDriver)
		}
		dialector = postgres.Open(cfg.PostgresURL)
	case config.StorageSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("storage driver %q has no relational backend", cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.StorageDriver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&db_models.Activity{}); err != nil {
		return fmt.Errorf("migrate activities: %w", err)
	}
	return nil
}

func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
