package energy

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"ulascansenturk/energy-loader/config"
)

// Open connects to the configured database. SQLite files are created on
// first use.
func Open(conf *config.Config, gormLogger logger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(conf.DBPath)
	case "postgres":
		dialector = postgres.Open(conf.PostgresDSN())
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", ErrStorage, conf.DBDriver)
	}

	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorage, conf.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if conf.DBDriver == "sqlite" {
		// one writer per file
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
